package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Demo enrollments: each sample student takes two disciplines
var demoEnrollments = []struct {
	Student    string
	Discipline string
}{
	{"ana2024", "Matemática"},
	{"ana2024", "Português"},
	{"bruno2024", "Matemática"},
	{"bruno2024", "História"},
	{"carla2024", "Português"},
	{"carla2024", "Ciências"},
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Base data first, then the demo enrollments on top
	if err := database.Seed(); err != nil {
		log.Fatalf("❌ Failed to seed base data: %v", err)
	}

	fmt.Println("🌱 Starting enrollment seed...")

	totalCreated := 0
	for _, e := range demoEnrollments {
		var student models.User
		if err := database.DB.Where("username = ? AND role = ?", e.Student, models.RoleStudent).
			First(&student).Error; err != nil {
			log.Printf("⚠️  Student %s not found, skipping", e.Student)
			continue
		}

		var discipline models.Discipline
		if err := database.DB.Where("name = ?", e.Discipline).First(&discipline).Error; err != nil {
			log.Printf("⚠️  Discipline %s not found, skipping", e.Discipline)
			continue
		}

		var existing models.Enrollment
		err := database.DB.
			Where("student_id = ? AND discipline_id = ?", student.ID, discipline.ID).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("❌ Failed to check enrollment for %s: %v", e.Student, err)
		}

		enrollment := models.Enrollment{
			StudentID:    student.ID,
			DisciplineID: discipline.ID,
			EnrolledAt:   time.Now(),
			Status:       models.EnrollmentActive,
		}
		if err := database.DB.Create(&enrollment).Error; err != nil {
			log.Fatalf("❌ Failed to enroll %s in %s: %v", e.Student, e.Discipline, err)
		}
		totalCreated++
	}

	fmt.Printf("✅ Seed complete: %d enrollments created\n", totalCreated)
}
