package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	bookinguc "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingUseCases struct {
	Request      *bookinguc.RequestBooking
	CreateOrder  *bookinguc.CreatePaymentOrder
	Verify       *bookinguc.VerifyPayment
	SettleCash   *bookinguc.SettleCashBooking
	SetStatus    *bookinguc.SetBookingStatus
	CancelOwn    *bookinguc.CancelOwnBooking
	ListSalon    *bookinguc.ListSalonBookings
	ListCustomer *bookinguc.ListCustomerBookings
}

type BookingHandler struct {
	uc BookingUseCases
	// checkoutKey is the public key clients pass to the payment widget.
	checkoutKey string
}

func NewBookingHandler(uc BookingUseCases, checkoutKey string) *BookingHandler {
	return &BookingHandler{uc: uc, checkoutKey: checkoutKey}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingServiceRequest struct {
	ServiceID string  `json:"serviceId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type RequestBookingRequest struct {
	SalonID       string                  `json:"salonId" binding:"required"`
	Services      []BookingServiceRequest `json:"services" binding:"required,min=1"`
	Date          string                  `json:"date" binding:"required"`
	Time          string                  `json:"time" binding:"required"`
	TotalPrice    float64                 `json:"totalPrice" binding:"required,gt=0"`
	PaymentMethod string                  `json:"paymentMethod" binding:"required"`
}

// VerifyPaymentRequest keeps the checkout widget's field names. Providers
// that confirm by lookup send no signature.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) RequestBooking(c *gin.Context) {
	var req RequestBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]bookinguc.LineItemInput, 0, len(req.Services))
	for _, s := range req.Services {
		items = append(items, bookinguc.LineItemInput{ServiceID: s.ServiceID, Name: s.Name, Price: s.Price})
	}

	b, err := h.uc.Request.Execute(c.Request.Context(), bookinguc.RequestBookingInput{
		CustomerID:    middleware.PrincipalFrom(c).ID(),
		SalonID:       req.SalonID,
		Items:         items,
		Date:          req.Date,
		Time:          req.Time,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Booking request sent successfully.",
		"booking": b,
	})
}

func (h *BookingHandler) CreatePaymentOrder(c *gin.Context) {
	order, b, err := h.uc.CreateOrder.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}

	fields := gin.H{
		"orderId":   order.ID,
		"amount":    order.Amount,
		"currency":  order.Currency,
		"provider":  order.Provider,
		"bookingId": b.ID,
	}
	if h.checkoutKey != "" {
		fields["key"] = h.checkoutKey
	}
	if order.CheckoutURL != "" {
		fields["checkoutUrl"] = order.CheckoutURL
	}
	httpresp.OK(c, fields)
}

func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.uc.Verify.Execute(c.Request.Context(), middleware.PrincipalFrom(c), bookinguc.VerifyPaymentInput{
		BookingID: c.Param("id"),
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		httperr.Write(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":   "Payment verified and appointment confirmed.",
		"bookingId": b.ID,
	})
}

func (h *BookingHandler) MyAppointments(c *gin.Context) {
	list, err := h.uc.ListCustomer.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c),
		c.Query("status"),
		c.Query("sort"),
	)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"bookings": list})
}

func (h *BookingHandler) CancelOwn(c *gin.Context) {
	b, err := h.uc.CancelOwn.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"message": "Appointment cancelled successfully.",
		"booking": b,
	})
}

// ======================================================
// CUSTOMER OR PARTNER
// ======================================================

func (h *BookingHandler) FinalPayment(c *gin.Context) {
	b, err := h.uc.SettleCash.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"message": "Payment status updated for Cash on Service.",
		"booking": b,
	})
}

// ======================================================
// PARTNER
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.uc.SetStatus.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{
		"message": "Booking status updated to " + b.BookingStatus + ".",
		"booking": b,
	})
}

func (h *BookingHandler) SalonBookings(c *gin.Context) {
	list, err := h.uc.ListSalon.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"bookings": list})
}
