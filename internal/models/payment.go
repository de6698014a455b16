package models

import "time"

const (
	PaymentPending       = "pending"
	PaymentPaid          = "paid"
	PaymentFailed        = "failed"
	PaymentRefunded      = "refunded"
	PaymentPendingRefund = "pending_refund"
)

// Payment records the outcome of an external payment capture.
// At most one row per appointment.
//
// For a canceled booking, status "pending" means "awaiting refund decision",
// not "awaiting capture". This overload is intentional business semantics.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string      `gorm:"size:36;uniqueIndex" json:"appointment_id"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Amount      int64 `json:"amount"`
	Discount    int64 `json:"discount"`
	Tax         int64 `json:"tax"`
	TotalAmount int64 `json:"total_amount"`

	Method string `gorm:"size:30" json:"method"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaidAt *time.Time `json:"paid_at"`

	RefundReason string     `gorm:"size:255" json:"refund_reason"`
	RefundedBy   *uint      `json:"refunded_by"`
	RefundedAt   *time.Time `json:"refunded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
