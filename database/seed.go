package database

import (
	"fmt"
	"log"
	"time"

	"github.com/escolacolaco/backend/models"
	"gorm.io/gorm"
)

var seedUsers = []models.User{
	{Name: "Administrador Escola Colaço", Username: "admin", Password: "admin123", Role: models.RoleAdmin, Email: "admin@escolacolaco.com"},
	{Name: "Professor João Silva", Username: "profjoao", Password: "prof123", Role: models.RoleTeacher, Email: "joao.silva@escolacolaco.com"},
	{Name: "Professora Maria Santos", Username: "promaria", Password: "prof123", Role: models.RoleTeacher, Email: "maria.santos@escolacolaco.com"},
	{Name: "Ana Carolina Oliveira", Username: "ana2024", Password: "aluno123", Role: models.RoleStudent, Email: "ana.oliveira@email.com"},
	{Name: "Bruno Mendes", Username: "bruno2024", Password: "aluno123", Role: models.RoleStudent, Email: "bruno.mendes@email.com"},
	{Name: "Carla Rodrigues", Username: "carla2024", Password: "aluno123", Role: models.RoleStudent, Email: "carla.rodrigues@email.com"},
}

// name, description, owning teacher username, credit hours
var seedDisciplines = []struct {
	Name        string
	Description string
	Teacher     string
	CreditHours int
}{
	{"Matemática", "Matemática Básica e Avançada", "profjoao", 80},
	{"Português", "Língua Portuguesa e Literatura", "promaria", 60},
	{"História", "História do Brasil e Geral", "profjoao", 40},
	{"Ciências", "Ciências Naturais", "promaria", 60},
}

// title, body, author username, featured
var seedNews = []struct {
	Title    string
	Body     string
	Author   string
	Featured bool
}{
	{"Início do Ano Letivo 2024", "Com grande alegria informamos o início do ano letivo de 2024 na Escola Colaço. Sejam todos bem-vindos!", "admin", true},
	{"Olimpíada de Matemática", "Inscrições abertas para a Olimpíada de Matemática. Participe!", "profjoao", false},
	{"Reunião de Pais", "Convocamos todos os pais para reunião importante no próximo sábado.", "admin", false},
}

// Seed inserts the initial records if they are not already present.
// Keyed on the unique columns, so running it again never duplicates rows.
func Seed() error {
	for _, u := range seedUsers {
		user := u
		if err := DB.Where("username = ?", u.Username).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
	}

	for _, d := range seedDisciplines {
		teacherID, err := userID(d.Teacher)
		if err != nil {
			return err
		}
		discipline := models.Discipline{
			Name:        d.Name,
			Description: d.Description,
			TeacherID:   teacherID,
			CreditHours: d.CreditHours,
		}
		if err := DB.Where("name = ?", d.Name).FirstOrCreate(&discipline).Error; err != nil {
			return fmt.Errorf("failed to seed discipline %s: %w", d.Name, err)
		}
	}

	for _, n := range seedNews {
		authorID, err := userID(n.Author)
		if err != nil {
			return err
		}
		item := models.News{
			Title:       n.Title,
			Body:        n.Body,
			PublishedAt: time.Now(),
			AuthorID:    authorID,
			Featured:    n.Featured,
		}
		if err := DB.Where("title = ?", n.Title).FirstOrCreate(&item).Error; err != nil {
			return fmt.Errorf("failed to seed news %q: %w", n.Title, err)
		}
	}

	log.Println("🌱 Initial data seeded")
	return nil
}

// userID looks up a seeded user's id by username
func userID(username string) (*uint, error) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user.ID, nil
}
