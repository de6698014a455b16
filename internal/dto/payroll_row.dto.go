package dto

import "time"

type DoctorPayrollRow struct {
	PayrollID *uint  `json:"payroll_id"`
	DoctorID  uint   `json:"doctor_id"`
	Doctor    string `json:"doctor"`
	Specialty string `json:"specialty"`

	Year  int `json:"year"`
	Month int `json:"month"`

	GrossRevenue int64 `json:"gross_revenue"`
	Refunds      int64 `json:"refunds"`
	PlatformFee  int64 `json:"platform_fee"`
	DoctorSalary int64 `json:"doctor_salary"`

	Status    string     `json:"status"`
	SettledAt *time.Time `json:"settled_at"`
	CanSettle bool       `json:"can_settle"`
}
