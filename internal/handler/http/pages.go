package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soil-advisor/internal/middleware"
)

// PageHandler serves the entry and landing pages.
type PageHandler struct {
	sessionSecret string
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(sessionSecret string) *PageHandler {
	if sessionSecret == "" {
		panic("session secret cannot be empty for PageHandler")
	}
	return &PageHandler{sessionSecret: sessionSecret}
}

// Index routes the bare path: authenticated users go to /home, everyone else
// to /login.
func (h *PageHandler) Index(c *gin.Context) {
	if _, err := middleware.SessionUsername(c, h.sessionSecret); err == nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Home renders the landing page for an authenticated user.
func (h *PageHandler) Home(c *gin.Context) {
	username, _ := middleware.CurrentUsername(c)
	c.HTML(http.StatusOK, "home.html", gin.H{"Username": username})
}

// Ping is the liveness probe.
func (h *PageHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
