package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const highlightsLimit = 3

// NewsWithAuthor is a news row with the author's display name joined in.
// AuthorName stays null when the author was deleted.
type NewsWithAuthor struct {
	models.News
	AuthorName *string `json:"authorName"`
}

func newsQuery() *gorm.DB {
	return database.DB.Model(&models.News{}).
		Select("news.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = news.author_id").
		Order("news.published_at DESC")
}

// GetNews handles GET /api/news - All news, newest first
func GetNews(c *gin.Context) {
	var items []NewsWithAuthor
	if err := newsQuery().Scan(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items, "count": len(items)})
}

// GetNewsHighlights handles GET /api/news/highlights - Featured news, capped at 3
func GetNewsHighlights(c *gin.Context) {
	items, err := featuredNews(highlightsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highlights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": items, "count": len(items)})
}

// GetNewsItem handles GET /api/news/:id - Single news item
func GetNewsItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news ID"})
		return
	}

	var item NewsWithAuthor
	result := newsQuery().Where("news.id = ?", id).Limit(1).Scan(&item)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": item})
}

// GetAdminNews handles GET /api/admin/news - Same listing for the admin area
func GetAdminNews(c *gin.Context) {
	GetNews(c)
}

// CreateNews handles POST /api/admin/news - Publish a news item.
// The author is the session user; a storage fault surfaces its message.
func CreateNews(c *gin.Context) {
	var req struct {
		Title    string  `json:"title"`
		Body     string  `json:"body"`
		Image    *string `json:"image"`
		Featured bool    `json:"featured"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	if req.Title == "" || req.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	authorID := sessionUserID(c)
	item := models.News{
		Title:       req.Title,
		Body:        req.Body,
		Image:       req.Image,
		PublishedAt: time.Now(),
		AuthorID:    &authorID,
		Featured:    req.Featured,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish news: " + err.Error()})
		return
	}

	if newsHub != nil {
		newsHub.PublishNews(item)
	}

	c.JSON(http.StatusCreated, gin.H{"news": item})
}

// recentNews returns the newest news with authors, capped at limit
func recentNews(limit int) ([]NewsWithAuthor, error) {
	var items []NewsWithAuthor
	err := newsQuery().Limit(limit).Scan(&items).Error
	return items, err
}

// featuredNews returns featured news only, newest first, capped at limit
func featuredNews(limit int) ([]NewsWithAuthor, error) {
	var items []NewsWithAuthor
	err := newsQuery().Where("news.featured = ?", true).Limit(limit).Scan(&items).Error
	return items, err
}
