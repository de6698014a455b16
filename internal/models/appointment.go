package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint `gorm:"index:idx_appointments_doctor_start" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	// Half-open interval: StartTime inclusive, EndTime exclusive.
	StartTime time.Time `gorm:"index:idx_appointments_doctor_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	// Reschedules happen in place; the move is recorded in status
	// history. This column is reserved for a rebook-style flow.
	RescheduledFrom *string `gorm:"size:36" json:"rescheduled_from"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CanceledBy   *uint      `json:"canceled_by"`
	CanceledAt   *time.Time `json:"canceled_at"`

	EndedAt *time.Time `json:"ended_at"`

	Consent bool   `json:"consent"`
	Notes   string `gorm:"size:255" json:"notes"`

	CreatedBy uint `json:"created_by"`
	UpdatedBy uint `json:"updated_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
