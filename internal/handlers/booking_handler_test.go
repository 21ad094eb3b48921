package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	bookinguc "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

const checkoutSecret = "rzp_test_secret"

// ======================================================
// FAKES
// ======================================================

type bookingStore struct {
	salon    *models.Salon
	bookings map[string]*models.Booking
}

func (s *bookingStore) GetSalon(_ context.Context, id string) (*models.Salon, error) {
	if s.salon.ID != id {
		return nil, httperr.NotFound("salon_not_found", "Salon not found.")
	}
	c := *s.salon
	return &c, nil
}

func (s *bookingStore) CreateBooking(_ context.Context, b *models.Booking) error {
	c := *b
	s.bookings[b.ID] = &c
	return nil
}

func (s *bookingStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, httperr.NotFound("booking_not_found", "Booking not found.")
	}
	c := *b
	return &c, nil
}

func (s *bookingStore) UpdateBooking(ctx context.Context, id string, mutate func(*models.Booking) error) (*models.Booking, error) {
	work, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(work); err != nil {
		return nil, err
	}
	c := *work
	s.bookings[id] = &c
	return work, nil
}

func (s *bookingStore) ListBookingsForSalon(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}

func (s *bookingStore) ListBookingsForCustomer(context.Context, string, domain.ListFilter) ([]models.Booking, error) {
	return nil, nil
}

type checkoutGateway struct{ orders int }

func (g *checkoutGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	g.orders++
	return &payment.Order{ID: fmt.Sprintf("order_%d", g.orders), Amount: req.Amount, Currency: req.Currency, Provider: "razorpay"}, nil
}

func (g *checkoutGateway) Confirm(_ context.Context, c payment.Confirmation) (*payment.Capture, error) {
	if !domain.VerifySignature(checkoutSecret, c.OrderID, c.PaymentID, c.Signature) {
		return nil, payment.ErrUnverified
	}
	return &payment.Capture{PaymentID: c.PaymentID}, nil
}

type knownSubjects struct{}

func (knownSubjects) CustomerExists(_ context.Context, id string) (bool, error) {
	return id == "cust-1", nil
}

func (knownSubjects) SalonExists(_ context.Context, id string) (bool, error) {
	return id == "S1", nil
}

func bookingRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	store := &bookingStore{
		salon: &models.Salon{
			ID: "S1", SalonName: "Glow Studio", Status: "Active",
			Services: []models.SalonService{{ID: "svc-hair", SalonID: "S1", Name: "Haircut", Price: 150, Active: true}},
		},
		bookings: map[string]*models.Booking{},
	}
	gw := &checkoutGateway{}
	n := bookinguc.NewNotifier(nil, nil, nil)

	h := NewBookingHandler(BookingUseCases{
		Request:      bookinguc.NewRequestBooking(store, n, "Asia/Kolkata"),
		CreateOrder:  bookinguc.NewCreatePaymentOrder(store, gw, "INR", n),
		Verify:       bookinguc.NewVerifyPayment(store, gw, n),
		SettleCash:   bookinguc.NewSettleCashBooking(store, n),
		SetStatus:    bookinguc.NewSetBookingStatus(store, n),
		CancelOwn:    bookinguc.NewCancelOwnBooking(store, n),
		ListSalon:    bookinguc.NewListSalonBookings(store),
		ListCustomer: bookinguc.NewListCustomerBookings(store),
	}, "rzp_test_key")

	tokens := auth.NewTokenService("secret", time.Hour)
	customerOnly := middleware.SessionGuard(tokens, knownSubjects{}, auth.KindCustomer)

	r := gin.New()
	g := r.Group("/bookings", customerOnly)
	g.POST("/request-booking", h.RequestBooking)
	g.POST("/create-payment-order/:id", h.CreatePaymentOrder)
	g.POST("/verify-payment/:id", h.VerifyPayment)
	return r, tokens
}

func authedPost(r http.Handler, token, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ======================================================
// ONLINE CHECKOUT
// ======================================================

func TestOnlineCheckoutOverHTTP(t *testing.T) {
	r, tokens := bookingRouter(t)
	token, err := tokens.Issue(auth.Customer("cust-1"))
	require.NoError(t, err)

	w := authedPost(r, "", "/bookings/request-booking", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = authedPost(r, token, "/bookings/request-booking", `{
		"salonId": "S1",
		"services": [{"serviceId": "svc-hair", "name": "Haircut", "price": 150}],
		"date": "2026-03-14",
		"time": "11:00 am",
		"totalPrice": 150,
		"paymentMethod": "Online"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode(t, w)["booking"].(map[string]any)
	id := booking["_id"].(string)
	assert.Equal(t, "11:00 AM", booking["time"])
	assert.Equal(t, string(domain.StatusPendingPayment), booking["bookingStatus"])

	w = authedPost(r, token, "/bookings/create-payment-order/"+id, ``)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := decode(t, w)
	assert.Equal(t, "order_1", order["orderId"])
	assert.Equal(t, float64(15000), order["amount"])
	assert.Equal(t, "rzp_test_key", order["key"])
	assert.Equal(t, id, order["bookingId"])

	verify := func(paymentID, signature string) *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"razorpay_order_id":"order_1","razorpay_payment_id":%q,"razorpay_signature":%q}`, paymentID, signature)
		return authedPost(r, token, "/bookings/verify-payment/"+id, body)
	}

	w = authedPost(r, token, "/bookings/verify-payment/"+id, `{"razorpay_order_id":"order_1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])

	w = verify("pay_1", domain.Sign("wrong", "order_1", "pay_1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_signature", decode(t, w)["error_code"])

	w = verify("pay_1", domain.Sign(checkoutSecret, "order_1", "pay_1"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, id, decode(t, w)["bookingId"])

	w = verify("pay_2", domain.Sign(checkoutSecret, "order_1", "pay_2"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_paid", decode(t, w)["error_code"])

	w = authedPost(r, token, "/bookings/create-payment-order/"+id, ``)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_paid", decode(t, w)["error_code"])
}

// ======================================================
// PROVIDER WEBHOOK
// ======================================================

type signedWebhooks struct{ captures map[string]*payment.Capture }

func (w signedWebhooks) VerifyWebhook(n payment.Notification) bool {
	return n.Signature == "ts=1,v1=ok" && n.RequestID == "req-1"
}

func (w signedWebhooks) Lookup(_ context.Context, id string) (*payment.Capture, error) {
	if c, ok := w.captures[id]; ok {
		return c, nil
	}
	return nil, payment.ErrUnverified
}

func TestPaymentWebhook(t *testing.T) {
	store := &bookingStore{
		salon: &models.Salon{ID: "S1"},
		bookings: map[string]*models.Booking{
			"b1": {
				ID: "b1", CustomerID: "cust-1", SalonID: "S1", TotalPrice: 150,
				BookingStatus: string(domain.StatusPendingPayment), PaymentStatus: string(domain.PaymentPending),
				PaymentMethod: string(domain.MethodOnline), RazorpayOrderID: "pref-1",
			},
		},
	}
	src := signedWebhooks{captures: map[string]*payment.Capture{
		"555": {PaymentID: "555", Receipt: "b1", Amount: 15000},
	}}
	h := NewPaymentWebhookHandler(bookinguc.NewConfirmProviderPayment(store, src, "mercadopago", bookinguc.NewNotifier(nil, nil, nil)))

	r := gin.New()
	r.POST("/payments/webhook", h.Notify)

	send := func(query, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/payments/webhook"+query, strings.NewReader(`{"type":"payment","data":{"id":"555"}}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-request-id", "req-1")
		req.Header.Set("x-signature", signature)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("?type=payment&data.id=555", "ts=1,v1=forged")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_signature", decode(t, w)["error_code"])
	assert.Equal(t, string(domain.PaymentPending), store.bookings["b1"].PaymentStatus)

	w = send("?type=payment&data.id=555", "ts=1,v1=ok")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(domain.PaymentPaid), store.bookings["b1"].PaymentStatus)
	assert.Equal(t, "555", store.bookings["b1"].RazorpayPaymentID)

	// body-only delivery of the same payment is acknowledged as a no-op
	w = send("", "ts=1,v1=ok")
	assert.Equal(t, http.StatusOK, w.Code)
}
