package models

import "time"

// ScheduleRule is one recurring weekly availability window for a doctor.
// The full set for a doctor is replaced wholesale on every schedule edit.
type ScheduleRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index:idx_schedule_rules_doctor_weekday" json:"doctor_id"`

	// ISO weekday, 1 = Monday ... 7 = Sunday.
	Weekday int `gorm:"index:idx_schedule_rules_doctor_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // "15:04"
	EndTime   string `gorm:"size:5" json:"end_time"`

	SessionMinutes int   `json:"session_minutes"`
	Price          int64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
