package dto

import "time"

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
}
