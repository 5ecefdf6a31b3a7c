package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// usernameKey is the Gin context key the authenticated username is stored
// under.
const usernameKey = "username"

// ErrNoSession indicates the request carries no usable session cookie.
var ErrNoSession = errors.New("no session")

// RequireSession returns a middleware gating protected routes. An anonymous
// or invalid session is redirected to the login page, never answered with a
// 401/403 body.
func RequireSession(sessionSecret string) gin.HandlerFunc {
	if sessionSecret == "" {
		panic("session secret cannot be empty for RequireSession middleware")
	}

	return func(c *gin.Context) {
		username, err := SessionUsername(c, sessionSecret)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				logrus.WithError(err).Warn("Session middleware: rejecting invalid session cookie")
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(usernameKey, username)
		logrus.WithField("username", username).Debug("Session middleware: user authenticated")
		c.Next()
	}
}

// CurrentUsername returns the authenticated username set by RequireSession.
func CurrentUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(usernameKey)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	return username, ok && username != ""
}

// SessionUsername extracts and validates the session cookie of a request,
// returning the username it was issued for. Used by RequireSession and by
// public routes that only need to know whether a session exists.
func SessionUsername(c *gin.Context, sessionSecret string) (string, error) {
	tokenStr, err := c.Cookie(SessionCookieName)
	if err != nil || tokenStr == "" {
		return "", ErrNoSession
	}

	claims, err := validateSessionToken(tokenStr, sessionSecret)
	if err != nil {
		return "", err
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errors.New("session token is missing the username claim")
	}
	return username, nil
}

// validateSessionToken parses and verifies the signed session token.
func validateSessionToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("session token validation failed: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid session token or claims type")
}
