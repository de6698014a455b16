package models

import "time"

const (
	PayrollUnsettled = "unsettled"
	PayrollSettled   = "settled"
)

// DoctorPayroll holds the monthly revenue split for one doctor.
// One row per (doctor, year, month); recomputed on each query until
// settled, then frozen.
type DoctorPayroll struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint `gorm:"uniqueIndex:idx_payrolls_doctor_period" json:"doctor_id"`
	Year     int  `gorm:"uniqueIndex:idx_payrolls_doctor_period" json:"year"`
	Month    int  `gorm:"uniqueIndex:idx_payrolls_doctor_period" json:"month"`

	GrossAmount int64 `json:"gross_amount"`
	PlatformFee int64 `json:"platform_fee"`
	NetAmount   int64 `json:"net_amount"`

	Status    string     `gorm:"size:20;default:'unsettled'" json:"status"`
	SettledAt *time.Time `json:"settled_at"`
	Note      string     `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
