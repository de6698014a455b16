package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medbook/clinic-scheduler/internal/httperr"
	"github.com/medbook/clinic-scheduler/internal/httpresp"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	ucPayroll "github.com/medbook/clinic-scheduler/internal/usecase/payroll"
)

type PayrollHandler struct {
	compute *ucPayroll.ComputePayrolls
	settle  *ucPayroll.SettlePayroll
}

func NewPayrollHandler(
	compute *ucPayroll.ComputePayrolls,
	settle *ucPayroll.SettlePayroll,
) *PayrollHandler {
	return &PayrollHandler{
		compute: compute,
		settle:  settle,
	}
}

type SettlePayrollRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
	Note     string `json:"note"`
}

func (h *PayrollHandler) List(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequestJSON(c, "invalid_period", "year and month are required.")
		return
	}

	rows, err := h.compute.Execute(c.Request.Context(), year, month, c.Query("search"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *PayrollHandler) Settle(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	adminID := userIDVal.(uint)

	var req SettlePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.settle.Execute(
		c.Request.Context(),
		adminID,
		req.DoctorID,
		req.Year,
		req.Month,
		req.Note,
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "settled"})
}
