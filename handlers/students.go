package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStudents handles GET /api/admin/students - List students by name
func GetStudents(c *gin.Context) {
	var students []models.User
	if err := database.DB.Where("role = ?", models.RoleStudent).
		Order("name ASC").
		Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students, "count": len(students)})
}

// GetTeachers handles GET /api/admin/teachers - List teachers by name (admin only)
func GetTeachers(c *gin.Context) {
	var teachers []models.User
	if err := database.DB.Where("role = ?", models.RoleTeacher).
		Order("name ASC").
		Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teachers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers, "count": len(teachers)})
}

// RegisterStudent handles POST /api/admin/students - Register a new student
func RegisterStudent(c *gin.Context) {
	var req struct {
		Name      string  `json:"name"`
		Username  string  `json:"username"`
		Password  string  `json:"password"`
		Email     string  `json:"email"`
		Phone     string  `json:"phone"`
		Address   string  `json:"address"`
		BirthDate *string `json:"birthDate"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, username and password are required"})
		return
	}

	student := models.User{
		Name:      req.Name,
		Username:  req.Username,
		Password:  req.Password,
		Role:      models.RoleStudent,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		BirthDate: req.BirthDate,
		Active:    true,
	}

	if err := database.DB.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"student": student})
}

// GetStudent handles GET /api/admin/students/:id - Fetch a single student
func GetStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.User
	if err := database.DB.Where("id = ? AND role = ?", id, models.RoleStudent).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

// UpdateStudent handles PUT /api/admin/students/:id - Update a student.
// A blank password keeps the stored credential.
func UpdateStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.User
	if err := database.DB.Where("id = ? AND role = ?", id, models.RoleStudent).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}

	var req struct {
		Name      string  `json:"name"`
		Username  string  `json:"username"`
		Password  string  `json:"password"`
		Email     string  `json:"email"`
		Phone     string  `json:"phone"`
		Address   string  `json:"address"`
		BirthDate *string `json:"birthDate"`
		Active    bool    `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and username are required"})
		return
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"username":   req.Username,
		"email":      strings.TrimSpace(req.Email),
		"phone":      strings.TrimSpace(req.Phone),
		"address":    strings.TrimSpace(req.Address),
		"birth_date": req.BirthDate,
		"active":     req.Active,
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}

	if err := database.DB.Model(&student).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already used by another user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

// DeleteStudent handles DELETE /api/admin/students/:id - Hard delete (admin only).
// Unknown or non-student ids return the same success with nothing deleted.
func DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	if err := database.DB.Where("id = ? AND role = ?", id, models.RoleStudent).
		Delete(&models.User{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
