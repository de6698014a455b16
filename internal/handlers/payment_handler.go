package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/httpresp"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	ucPayment "github.com/medbook/clinic-scheduler/internal/usecase/payment"
)

type PaymentHandler struct {
	refund *ucPayment.ProcessRefund
}

func NewPaymentHandler(refund *ucPayment.ProcessRefund) *PaymentHandler {
	return &PaymentHandler{refund: refund}
}

type RefundRequest struct {
	PaymentID     uint   `json:"payment_id" binding:"required"`
	AppointmentID string `json:"appointment_id" binding:"required"`
	Reason        string `json:"reason"`
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	adminID := userIDVal.(uint)

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	pay, err := h.refund.Execute(
		c.Request.Context(),
		adminID,
		req.PaymentID,
		req.AppointmentID,
		req.Reason,
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, pay)
}
