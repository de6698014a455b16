package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scheduledomain "github.com/medbook/clinic-scheduler/internal/domain/schedule"
	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/httpresp"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	ucSchedule "github.com/medbook/clinic-scheduler/internal/usecase/schedule"
)

type ScheduleHandler struct {
	setWeekly *ucSchedule.SetWeeklySchedule
	getWeekly *ucSchedule.GetWeeklySchedule
}

func NewScheduleHandler(
	setWeekly *ucSchedule.SetWeeklySchedule,
	getWeekly *ucSchedule.GetWeeklySchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		setWeekly: setWeekly,
		getWeekly: getWeekly,
	}
}

type WeeklyScheduleUpdateRequest struct {
	SessionMinutes int                        `json:"session_minutes" binding:"required"`
	Price          int64                      `json:"price"`
	Days           []scheduledomain.DayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	week, err := h.getWeekly.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, week)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	doctorID := userIDVal.(uint)

	var req WeeklyScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.setWeekly.Execute(c.Request.Context(), ucSchedule.SetWeeklyScheduleInput{
		DoctorID:       doctorID,
		SessionMinutes: req.SessionMinutes,
		Price:          req.Price,
		Days:           req.Days,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
