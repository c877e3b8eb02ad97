package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestGetNewsListsAllWithAuthors(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := doJSON(router, "GET", "/api/news", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	items := body["news"].([]interface{})
	assert.Len(t, items, 3)

	// Seeded items carry their author's display name
	titles := map[string]string{}
	for _, raw := range items {
		item := raw.(map[string]interface{})
		if item["authorName"] != nil {
			titles[item["title"].(string)] = item["authorName"].(string)
		}
	}
	assert.Equal(t, "Professor João Silva", titles["Olimpíada de Matemática"])
	assert.Equal(t, "Administrador Escola Colaço", titles["Reunião de Pais"])
}

func TestNewsOrderingNewestFirst(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	item := models.News{
		Title:       "Notícia mais recente",
		Body:        "Conteúdo",
		PublishedAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, database.DB.Create(&item).Error)

	w := doJSON(router, "GET", "/api/news", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["news"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Notícia mais recente", first["title"])
	// No author on this one, the join must tolerate it
	assert.Nil(t, first["authorName"])
}

func TestNewsHighlightsCapAndFilter(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	// Seed ships one featured item; add four more
	for i := 0; i < 4; i++ {
		item := models.News{
			Title:       fmt.Sprintf("Destaque extra %d", i),
			Body:        "Conteúdo",
			Featured:    true,
			PublishedAt: time.Now().Add(time.Duration(i+1) * time.Minute),
		}
		assert.NoError(t, database.DB.Create(&item).Error)
	}

	w := doJSON(router, "GET", "/api/news/highlights", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["news"].([]interface{})
	assert.Len(t, items, 3)
	for _, raw := range items {
		item := raw.(map[string]interface{})
		assert.Equal(t, true, item["featured"])
	}
}

func TestGetNewsItemNotFound(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()

	w := doJSON(router, "GET", "/api/news/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/news/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNews(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	token := loginAs(t, router, "profjoao", "prof123")

	// Missing body is a validation error
	w := doJSON(router, "POST", "/api/admin/news", map[string]interface{}{
		"title": "Sem conteúdo",
		"body":  "   ",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/api/admin/news", map[string]interface{}{
		"title":    "Feira de Ciências",
		"body":     "A feira acontece no próximo mês.",
		"featured": true,
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Author comes from the session, not the request
	var teacher models.User
	assert.NoError(t, database.DB.Where("username = ?", "profjoao").First(&teacher).Error)
	var created models.News
	assert.NoError(t, database.DB.Where("title = ?", "Feira de Ciências").First(&created).Error)
	assert.NotNil(t, created.AuthorID)
	assert.Equal(t, teacher.ID, *created.AuthorID)
	assert.True(t, created.Featured)
	assert.False(t, created.PublishedAt.IsZero())
}

func TestDeletedAuthorLeavesNewsOrphaned(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	adminToken := loginAs(t, router, "admin", "admin123")

	// Point an item at a student author, then hard-delete the student
	var bruno models.User
	assert.NoError(t, database.DB.Where("username = ?", "bruno2024").First(&bruno).Error)
	item := models.News{
		Title:       "Autor removido",
		Body:        "Conteúdo",
		AuthorID:    &bruno.ID,
		PublishedAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, database.DB.Create(&item).Error)

	w := doJSON(router, "DELETE", fmt.Sprintf("/api/admin/students/%d", bruno.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// The row survives with a dangling author and renders a null name
	w = doJSON(router, "GET", fmt.Sprintf("/api/news/%d", item.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	news := decodeBody(t, w)["news"].(map[string]interface{})
	assert.Equal(t, "Autor removido", news["title"])
	assert.Nil(t, news["authorName"])
}
