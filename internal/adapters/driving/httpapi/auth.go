package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tokenStore holds admin session tokens issued by /admin/login.
// Tokens live until the process exits.
type tokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]struct{})}
}

func (s *tokenStore) issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()
	return token
}

func (s *tokenStore) valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

func (s *tokenStore) revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

type loginRequest struct {
	Password string `json:"password"`
}

// handleLogin exchanges the admin password for a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	if s.cfg.AdminPassword == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Admin password not configured"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": s.tokens.issue()})
}

// handleLogout revokes the caller's token.
func (s *Server) handleLogout(c *gin.Context) {
	s.tokens.revoke(bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// requireAdmin rejects requests without a valid bearer token.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.tokens.valid(bearerToken(c)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
