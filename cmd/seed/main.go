package main

import (
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/clinic-scheduler/internal/config"
	dbpkg "github.com/medbook/clinic-scheduler/internal/db"
	"github.com/medbook/clinic-scheduler/internal/models"
)

// Seeds a development database with an admin, a handful of doctors with
// weekly schedules, and some patients.
func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := models.User{
		Name:         "Platform Admin",
		Email:        "admin@clinic.local",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	specialties := []string{"Cardiology", "Dermatology", "Pediatrics", "Neurology", "General Practice"}

	for i := 0; i < 5; i++ {
		doctor := models.User{
			Name:         "Dr. " + gofakeit.Name(),
			Email:        fmt.Sprintf("doctor%d@clinic.local", i+1),
			PasswordHash: string(hash),
			Phone:        gofakeit.Phone(),
			Role:         models.RoleDoctor,
			Specialty:    specialties[i%len(specialties)],
		}
		if err := db.Where("email = ?", doctor.Email).FirstOrCreate(&doctor).Error; err != nil {
			log.Fatalf("seed doctor: %v", err)
		}

		// Mon-Fri, morning and afternoon windows, 30-minute sessions.
		var rules []models.ScheduleRule
		for weekday := 1; weekday <= 5; weekday++ {
			rules = append(rules,
				models.ScheduleRule{
					DoctorID:       doctor.ID,
					Weekday:        weekday,
					StartTime:      "09:00",
					EndTime:        "12:00",
					SessionMinutes: 30,
					Price:          150000,
				},
				models.ScheduleRule{
					DoctorID:       doctor.ID,
					Weekday:        weekday,
					StartTime:      "13:00",
					EndTime:        "17:00",
					SessionMinutes: 30,
					Price:          150000,
				},
			)
		}

		if err := db.Where("doctor_id = ?", doctor.ID).Delete(&models.ScheduleRule{}).Error; err != nil {
			log.Fatalf("clear rules: %v", err)
		}
		if err := db.Create(&rules).Error; err != nil {
			log.Fatalf("seed rules: %v", err)
		}
	}

	for i := 0; i < 20; i++ {
		patient := models.User{
			Name:         gofakeit.Name(),
			Email:        fmt.Sprintf("patient%d@clinic.local", i+1),
			PasswordHash: string(hash),
			Phone:        gofakeit.Phone(),
			Role:         models.RolePatient,
		}
		if err := db.Where("email = ?", patient.Email).FirstOrCreate(&patient).Error; err != nil {
			log.Fatalf("seed patient: %v", err)
		}
	}

	log.Println("seed complete")
}
