package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/medbook/clinic-scheduler/internal/domain/appointment"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/httpresp"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/medbook/clinic-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	confirm      *ucAppointment.ConfirmAppointment
	reschedule   *ucAppointment.RescheduleAppointment
	cancel       *ucAppointment.CancelAppointment
	complete     *ucAppointment.CompleteAppointment
	availability *ucAppointment.GetAvailability
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth

	repo domain.Repository
	loc  *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	availability *ucAppointment.GetAvailability,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	repo domain.Repository,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		confirm:      confirm,
		reschedule:   reschedule,
		cancel:       cancel,
		complete:     complete,
		availability: availability,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		repo:         repo,
		loc:          loc,
	}
}

// --------- Requests ---------

type PaymentRequest struct {
	Amount      int64  `json:"amount"`
	Discount    int64  `json:"discount"`
	Tax         int64  `json:"tax"`
	TotalAmount int64  `json:"total_amount"`
	Method      string `json:"method"`
	Status      string `json:"status"`
}

type CreateAppointmentRequest struct {
	PatientID uint   `json:"patient_id" binding:"required"`
	Date      string `json:"date" binding:"required"`  // YYYY-MM-DD
	Start     string `json:"start" binding:"required"` // HH:mm
	End       string `json:"end" binding:"required"`   // HH:mm
	Notes     string `json:"notes"`
	Consent   bool   `json:"consent"`

	Payment *PaymentRequest `json:"payment"`
}

type RescheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type CompleteRequest struct {
	ReportCompleted bool `json:"report_completed"`
}

// --------- Availability ---------

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Query("doctor_id"), 10, 64)
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_doctor_id", "doctor_id must be a number.")
		return
	}

	date, err := parseDateIn(h.loc, c.Query("date"))
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		uint(doctorID),
		date,
		c.Query("exclude_appointment_id"),
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, slots)
}

// --------- Lifecycle ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := parseDateTimeIn(h.loc, req.Date, req.Start)
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date_or_time", "Use YYYY-MM-DD and HH:mm.")
		return
	}
	end, err := parseDateTimeIn(h.loc, req.Date, req.End)
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date_or_time", "Use YYYY-MM-DD and HH:mm.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		DoctorID:  doctorID,
		PatientID: req.PatientID,
		Start:     start,
		End:       end,
		Notes:     req.Notes,
		Consent:   req.Consent,
	}
	if req.Payment != nil {
		in.Payment = &ucAppointment.PaymentInput{
			Amount:      req.Payment.Amount,
			Discount:    req.Payment.Discount,
			Tax:         req.Payment.Tax,
			TotalAmount: req.Payment.TotalAmount,
			Method:      req.Payment.Method,
			Status:      req.Payment.Status,
		}
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	ap, err := h.confirm.Execute(c.Request.Context(), c.Param("id"), doctorID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	patientID := userIDVal.(uint)

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	start, err := parseDateTimeIn(h.loc, req.Date, req.Start)
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date_or_time", "Use YYYY-MM-DD and HH:mm.")
		return
	}
	end, err := parseDateTimeIn(h.loc, req.Date, req.End)
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date_or_time", "Use YYYY-MM-DD and HH:mm.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: c.Param("id"),
		PatientID:     patientID,
		NewStart:      start,
		NewEnd:        end,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	patientID := userIDVal.(uint)

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), patientID, req.Reason)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), c.Param("id"), doctorID, req.ReportCompleted)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// --------- Listings ---------

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	date, err := parseDateIn(h.loc, c.Query("date"))
	if err != nil {
		httperr.BadRequestJSON(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequestJSON(c, "invalid_period", "year and month are required.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), doctorID, year, month, h.loc)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	hist, err := h.repo.ListStatusHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, hist)
}
