package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

func init() {
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-dev-secret-change-me")
	}
}

const sessionCookie = "session"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionUser is the identity carried by the session token
type SessionUser struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// Login handles POST /api/auth/login - authenticate against an active user.
// Unknown username and wrong password get the same response on purpose.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? AND active = ?", req.Username, true).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Credentials are stored as-is; hashing them would invalidate every
	// existing record, so the exact-match check is kept until re-seeding
	// is signed off.
	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"name":     user.Name,
		"email":    user.Email,
		"exp":      time.Now().Add(sessionDuration()).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie(sessionCookie, tokenString, int(sessionDuration().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, AuthResponse{
		Token: tokenString,
		User: SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Name:     user.Name,
			Email:    user.Email,
		},
	})
}

// Logout handles POST /api/auth/logout - drops the session cookie
func Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// sessionDuration returns the session token lifetime (24h)
func sessionDuration() time.Duration {
	return 24 * time.Hour
}

// AuthMiddleware protects routes. With no arguments any authenticated
// user passes; otherwise the session role must be in the allowed set.
func AuthMiddleware(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		roleClaim, _ := claims["role"].(string)
		role := models.Role(roleClaim)
		if len(allowed) > 0 && !roleAllowed(role, allowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		// sub round-trips through JSON as float64
		if sub, ok := claims["sub"].(float64); ok {
			c.Set("userID", uint(sub))
		}
		c.Set("role", role)
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		if name, ok := claims["name"].(string); ok {
			c.Set("name", name)
		}

		c.Next()
	}
}

// sessionToken pulls the token from the Authorization header or the
// session cookie, whichever the client sent
func sessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// sessionUserID returns the authenticated user's id set by AuthMiddleware
func sessionUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
