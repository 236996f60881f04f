package main

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a pre-computed bcrypt hash used when the username doesn't
// match. Running bcrypt against it keeps response time constant.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// login verifies username/password against the configured account and
// returns the API token.
// POST /api/login (public).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userOK := h.authUsername != "" && h.authPasswordHash != "" &&
		subtle.ConstantTimeCompare([]byte(body.Username), []byte(h.authUsername)) == 1

	// Always run bcrypt so an unknown username costs the same as a wrong password.
	hashToCheck := string(dummyHash)
	if userOK {
		hashToCheck = h.authPasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if !userOK || compareErr != nil {
		h.log.Warn("login failed", "username", body.Username)
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": h.authToken})
}

// authMiddleware validates the Bearer token. With no token configured every
// request is rejected.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		if h.authToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.authToken)) != 1 {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}
