package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	bookinguc "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type PaymentWebhookHandler struct {
	confirm *bookinguc.ConfirmProviderPayment
}

func NewPaymentWebhookHandler(confirm *bookinguc.ConfirmProviderPayment) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{confirm: confirm}
}

type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Notify takes the topic and payment id from the query string, where the
// provider signs them, and falls back to the JSON body.
func (h *PaymentWebhookHandler) Notify(c *gin.Context) {
	var body webhookBody
	_ = c.ShouldBindJSON(&body)

	n := payment.Notification{
		Topic:     c.DefaultQuery("type", body.Type),
		DataID:    c.DefaultQuery("data.id", body.Data.ID),
		RequestID: c.GetHeader("x-request-id"),
		Signature: c.GetHeader("x-signature"),
	}

	if _, err := h.confirm.Execute(c.Request.Context(), n); err != nil {
		httperr.Write(c, err)
		return
	}
	httpresp.OK(c, gin.H{"received": true})
}
