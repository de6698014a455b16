package models

import "time"

// AppointmentStatusHistory is append-only: one row per status transition,
// never updated or deleted.
type AppointmentStatusHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string `gorm:"size:36;index:idx_status_history_appointment" json:"appointment_id"`

	OldStatus string `gorm:"size:20" json:"old_status"`
	NewStatus string `gorm:"size:20" json:"new_status"`

	ActorID uint   `json:"actor_id"`
	Note    string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `gorm:"index:idx_status_history_appointment" json:"created_at"`
}
