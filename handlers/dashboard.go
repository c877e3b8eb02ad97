package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const recentLimit = 5

// EnrollmentRow is a student's enrollment joined with its discipline and teacher
type EnrollmentRow struct {
	DisciplineName        string    `json:"disciplineName"`
	DisciplineDescription string    `json:"disciplineDescription"`
	TeacherName           *string   `json:"teacherName"`
	EnrolledAt            time.Time `json:"enrolledAt"`
}

// GetHomePage handles GET /api/home - Public landing data: featured news
// plus active student/teacher counts
func GetHomePage(c *gin.Context) {
	highlights, err := featuredNews(highlightsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highlights"})
		return
	}

	var totalStudents, totalTeachers int64
	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleStudent, true).Count(&totalStudents)
	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleTeacher, true).Count(&totalTeachers)

	c.JSON(http.StatusOK, gin.H{
		"highlights":    highlights,
		"totalStudents": totalStudents,
		"totalTeachers": totalTeachers,
	})
}

// GetStudentDashboard handles GET /api/student/dashboard - Profile, active
// enrollments with discipline and teacher, and the latest news
func GetStudentDashboard(c *gin.Context) {
	studentID := sessionUserID(c)

	var student models.User
	if err := database.DB.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	var enrollments []EnrollmentRow
	if err := database.DB.Model(&models.Enrollment{}).
		Select("disciplines.name AS discipline_name, disciplines.description AS discipline_description, teachers.name AS teacher_name, enrollments.enrolled_at AS enrolled_at").
		Joins("JOIN disciplines ON disciplines.id = enrollments.discipline_id").
		Joins("LEFT JOIN users AS teachers ON teachers.id = disciplines.teacher_id").
		Where("enrollments.student_id = ? AND enrollments.status = ?", studentID, models.EnrollmentActive).
		Scan(&enrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	news, err := recentNews(recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student":     student,
		"enrollments": enrollments,
		"news":        news,
	})
}

// GetAdminDashboard handles GET /api/admin/dashboard - Aggregate counts,
// latest news and latest registered students
func GetAdminDashboard(c *gin.Context) {
	var stats struct {
		Students    int64 `json:"students"`
		Teachers    int64 `json:"teachers"`
		Disciplines int64 `json:"disciplines"`
		News        int64 `json:"news"`
	}

	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleStudent, true).Count(&stats.Students)
	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleTeacher, true).Count(&stats.Teachers)
	database.DB.Model(&models.Discipline{}).Count(&stats.Disciplines)
	database.DB.Model(&models.News{}).Count(&stats.News)

	news, err := recentNews(recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	var latestStudents []models.User
	if err := database.DB.Where("role = ?", models.RoleStudent).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&latestStudents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"news":           news,
		"latestStudents": latestStudents,
	})
}

// GetStatistics handles GET /api/admin/statistics - Machine-readable counts
func GetStatistics(c *gin.Context) {
	var stats struct {
		Students    int64 `json:"students"`
		Teachers    int64 `json:"teachers"`
		Disciplines int64 `json:"disciplines"`
	}

	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleStudent, true).Count(&stats.Students)
	database.DB.Model(&models.User{}).Where("role = ? AND active = ?", models.RoleTeacher, true).Count(&stats.Teachers)
	database.DB.Model(&models.Discipline{}).Count(&stats.Disciplines)

	c.JSON(http.StatusOK, stats)
}

// PostContact handles POST /api/contact - Accepts a contact message.
// Delivery is not wired up; the form just acknowledges.
func PostContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and message are required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message received, we will get back to you soon"})
}
