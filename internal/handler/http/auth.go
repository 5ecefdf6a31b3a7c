package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"soil-advisor/internal/middleware"
	"soil-advisor/internal/service"
)

// AuthHandler serves the register/login/logout flows.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register handles a registration submission. A taken username re-renders
// the form with a visible message; success redirects to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Username and password are required",
		})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), username, password)
	if err != nil {
		logCtx := logrus.WithField("username", username)
		status := http.StatusBadRequest
		if !errors.Is(err, service.ErrUsernameTaken) {
			logCtx.WithError(err).Error("Handler.Register: internal error during registration")
			status = http.StatusInternalServerError
		} else {
			logCtx.Warn("Handler.Register: username already taken")
		}
		c.HTML(status, "register.html", gin.H{"Error": userMessage(err)})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles a login submission. Success sets the signed session cookie
// and redirects to /home; every failure renders the same uniform message.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		logCtx := logrus.WithField("username", username)
		status := http.StatusUnauthorized
		if !errors.Is(err, service.ErrAuthenticationFailed) {
			logCtx.WithError(err).Error("Handler.Login: internal error during login")
			status = http.StatusInternalServerError
		} else {
			logCtx.Warn("Handler.Login: authentication failed")
		}
		c.HTML(status, "login.html", gin.H{"Error": userMessage(err)})
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/home")
}

// Logout clears the session cookie unconditionally and redirects to login.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
