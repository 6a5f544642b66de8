package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// SessionName is the admin session cookie.
const SessionName = "bodega-admin"

var store *sessions.CookieStore

// InitSessionStore builds the cookie store from SESSION_SECRET. Call once
// at startup before any handler runs.
func InitSessionStore() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-session-secret"
	}
	store = sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionStore returns the shared cookie store, initializing it with
// defaults if startup has not done so (tests).
func SessionStore() *sessions.CookieStore {
	if store == nil {
		InitSessionStore()
	}
	return store
}

func sessionUser(c *gin.Context) (userID, role string) {
	session, _ := SessionStore().Get(c.Request, SessionName)
	userID, _ = session.Values["user_id"].(string)
	role, _ = session.Values["role"].(string)
	return userID, role
}

// RequireAdmin aborts the request unless a logged-in admin session exists.
// The user id and role are placed in the gin context for handlers.
func RequireAdmin(c *gin.Context) {
	userID, role := sessionUser(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.Set("user_id", userID)
	c.Set("role", role)
}

// RequireSuperAdmin additionally demands the superadmin role. Used for
// admin-user management.
func RequireSuperAdmin(c *gin.Context) {
	userID, role := sessionUser(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if role != "superadmin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Superadmin role required"})
		return
	}
	c.Set("user_id", userID)
	c.Set("role", role)
}
