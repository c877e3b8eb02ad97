package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
)

// setupTestDB connects to a throwaway sqlite file and seeds the initial data
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	if err := database.ConnectPath(path); err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Seed(); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
}

// setupRouter wires the routes the same way main does
func setupRouter() *gin.Engine {
	r := gin.New()

	api := r.Group("/api")
	{
		api.GET("/home", GetHomePage)
		api.GET("/news", GetNews)
		api.GET("/news/highlights", GetNewsHighlights)
		api.GET("/news/:id", GetNewsItem)
		api.POST("/contact", PostContact)

		auth := api.Group("/auth")
		{
			auth.POST("/login", Login)
			auth.POST("/logout", Logout)
		}

		student := api.Group("/student")
		student.Use(AuthMiddleware(models.RoleStudent))
		{
			student.GET("/dashboard", GetStudentDashboard)
		}

		admin := api.Group("/admin")
		admin.Use(AuthMiddleware(models.RoleAdmin, models.RoleTeacher))
		{
			admin.GET("/dashboard", GetAdminDashboard)
			admin.GET("/statistics", GetStatistics)

			admin.GET("/students", GetStudents)
			admin.POST("/students", RegisterStudent)
			admin.GET("/students/:id", GetStudent)
			admin.PUT("/students/:id", UpdateStudent)
			admin.DELETE("/students/:id", AuthMiddleware(models.RoleAdmin), DeleteStudent)
			admin.GET("/students/:id/enrollments", GetStudentEnrollments)

			admin.GET("/teachers", AuthMiddleware(models.RoleAdmin), GetTeachers)

			admin.GET("/news", GetAdminNews)
			admin.POST("/news", CreateNews)

			admin.POST("/enrollments", AuthMiddleware(models.RoleAdmin), CreateEnrollment)

			admin.GET("/live/stats", GetNewsHubStats)
		}
	}

	return r
}

// doJSON performs a JSON request with an optional bearer token
func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// loginAs logs a seeded user in and returns the session token
func loginAs(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(router, "POST", "/api/auth/login", LoginRequest{Username: username, Password: password}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %s", username, w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.Token
}

// decodeBody unmarshals a response body into a map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}
