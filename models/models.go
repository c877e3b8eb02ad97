package models

import (
	"time"
)

// EnrollmentStatus enum
type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentInactive EnrollmentStatus = "inactive"
)

// News model
// AuthorID is not enforced as a foreign key: deleting a user leaves the
// reference dangling and listings render the author as null.
type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Body        string    `gorm:"column:body;not null" json:"body"`
	Image       *string   `gorm:"column:image" json:"image,omitempty"`
	PublishedAt time.Time `gorm:"column:published_at;default:CURRENT_TIMESTAMP;index" json:"publishedAt"`
	AuthorID    *uint     `gorm:"column:author_id" json:"authorId,omitempty"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Featured    bool      `gorm:"column:featured;default:false" json:"featured"`
}

func (News) TableName() string {
	return "news"
}

// Discipline model - owned by a teacher, seeded at startup
type Discipline struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	TeacherID   *uint  `gorm:"column:teacher_id" json:"teacherId,omitempty"`
	Teacher     *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	CreditHours int    `gorm:"column:credit_hours" json:"creditHours"`
}

func (Discipline) TableName() string {
	return "disciplines"
}

// Enrollment model - links a student to a discipline, one row per pair
type Enrollment struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	StudentID    uint             `gorm:"column:student_id;uniqueIndex:idx_student_discipline" json:"studentId"`
	Student      *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	DisciplineID uint             `gorm:"column:discipline_id;uniqueIndex:idx_student_discipline" json:"disciplineId"`
	Discipline   *Discipline      `gorm:"foreignKey:DisciplineID" json:"discipline,omitempty"`
	EnrolledAt   time.Time        `gorm:"column:enrolled_at;default:CURRENT_TIMESTAMP" json:"enrolledAt"`
	Status       EnrollmentStatus `gorm:"column:status;default:active" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
