package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// fakeRepo serializes UpdateBooking like a row lock would and only stores
// the mutated copy when mutate succeeds.
type fakeRepo struct {
	mu       sync.Mutex
	salons   map[string]*models.Salon
	bookings map[string]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{salons: map[string]*models.Salon{}, bookings: map[string]*models.Booking{}}
}

func clone(b *models.Booking) *models.Booking {
	c := *b
	c.Items = append([]models.BookingItem(nil), b.Items...)
	return &c
}

func (r *fakeRepo) GetSalon(_ context.Context, id string) (*models.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.salons[id]
	if !ok {
		return nil, httperr.NotFound("salon_not_found", "Salon not found.")
	}
	c := *s
	return &c, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = clone(b)
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.NotFound("booking_not_found", "Booking not found.")
	}
	return clone(b), nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, id string, mutate func(*models.Booking) error) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.NotFound("booking_not_found", "Booking not found.")
	}
	work := clone(b)
	if err := mutate(work); err != nil {
		return nil, err
	}
	r.bookings[id] = work
	return clone(work), nil
}

func (r *fakeRepo) ListBookingsForSalon(_ context.Context, salonID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SalonID == salonID {
			out = append(out, *clone(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.After(out[j].ScheduledAt) })
	return out, nil
}

func (r *fakeRepo) ListBookingsForCustomer(_ context.Context, customerID string, f domain.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if f.Status != "" && !strings.EqualFold(b.BookingStatus, f.Status) {
			continue
		}
		c := clone(b)
		if s, ok := r.salons[b.SalonID]; ok {
			c.Salon = *s
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	return out, nil
}

func (r *fakeRepo) booking(id string) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *clone(r.bookings[id])
}

type fakeGateway struct {
	mu       sync.Mutex
	calls    []payment.OrderRequest
	fail     bool
	onCreate func()
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	n := len(g.calls)
	hook := g.onCreate
	g.mu.Unlock()

	if hook != nil {
		hook()
	}
	if g.fail {
		return nil, errors.New("provider says no: key_secret invalid")
	}
	return &payment.Order{
		ID:       "order_" + string(rune('A'+n-1)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Provider: "fake",
	}, nil
}

// Confirm checks the checkout signature the way the default provider does.
func (g *fakeGateway) Confirm(_ context.Context, c payment.Confirmation) (*payment.Capture, error) {
	if !domain.VerifySignature(secret, c.OrderID, c.PaymentID, c.Signature) {
		return nil, payment.ErrUnverified
	}
	return &payment.Capture{PaymentID: c.PaymentID}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// fakeWebhooks accepts notifications whose signature is "valid" and serves
// captures by payment id.
type fakeWebhooks struct {
	captures map[string]*payment.Capture
	err      error
}

func (w *fakeWebhooks) VerifyWebhook(n payment.Notification) bool {
	return n.Signature == "valid"
}

func (w *fakeWebhooks) Lookup(_ context.Context, paymentID string) (*payment.Capture, error) {
	if w.err != nil {
		return nil, w.err
	}
	c, ok := w.captures[paymentID]
	if !ok {
		return nil, payment.ErrUnverified
	}
	return c, nil
}

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key, payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.key)
	}
	return out
}
