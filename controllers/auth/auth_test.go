package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login", Login(db))
	r.POST("/api/auth/logout", Logout())
	r.GET("/api/auth/session", Session(db))
	return r
}

func seedAdmin(t *testing.T, db *gorm.DB) models.AdminUser {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := models.AdminUser{
		Username: "admin",
		Email:    "admin@fvbodegones.com",
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func postLogin(router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)
	seedAdmin(t, db)

	w := postLogin(router, "admin", "admin123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))

	var user models.AdminUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "admin", user.Username)
	// the hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")
}

// Unknown username and wrong password must be indistinguishable.
func TestLoginErrorsDoNotLeakUserExistence(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)
	seedAdmin(t, db)

	unknownUser := postLogin(router, "nobody", "admin123")
	wrongPassword := postLogin(router, "admin", "wrong")

	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.JSONEq(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestSessionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)
	seedAdmin(t, db)

	login := postLogin(router, "admin", "admin123")
	assert.Equal(t, http.StatusOK, login.Code)
	cookie := login.Header().Get("Set-Cookie")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	req.Header.Set("Cookie", cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.AdminUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "admin", user.Username)
}

func TestSessionWithoutLogin(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	db := newTestDB(t)
	router := newAuthRouter(db)
	seedAdmin(t, db)

	login := postLogin(router, "admin", "admin123")
	cookie := login.Header().Get("Set-Cookie")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	req.Header.Set("Cookie", cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
