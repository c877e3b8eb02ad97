package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateEnrollment handles POST /api/admin/enrollments - Enroll a student
// in a discipline (admin only). A (student, discipline) pair enrolls once.
func CreateEnrollment(c *gin.Context) {
	var req struct {
		StudentID    uint `json:"studentId" binding:"required"`
		DisciplineID uint `json:"disciplineId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student and discipline are required"})
		return
	}

	var student models.User
	if err := database.DB.Where("id = ? AND role = ?", req.StudentID, models.RoleStudent).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	var discipline models.Discipline
	if err := database.DB.First(&discipline, req.DisciplineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discipline not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discipline"})
		return
	}

	enrollment := models.Enrollment{
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		EnrolledAt:   time.Now(),
		Status:       models.EnrollmentActive,
	}

	if err := database.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Student already enrolled in this discipline"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create enrollment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment})
}

// GetStudentEnrollments handles GET /api/admin/students/:id/enrollments
func GetStudentEnrollments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var enrollments []EnrollmentRow
	if err := database.DB.Model(&models.Enrollment{}).
		Select("disciplines.name AS discipline_name, disciplines.description AS discipline_description, teachers.name AS teacher_name, enrollments.enrolled_at AS enrolled_at").
		Joins("JOIN disciplines ON disciplines.id = enrollments.discipline_id").
		Joins("LEFT JOIN users AS teachers ON teachers.id = disciplines.teacher_id").
		Where("enrollments.student_id = ?", id).
		Scan(&enrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments, "count": len(enrollments)})
}
