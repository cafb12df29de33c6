package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// signup registers a new account.
//
//	> curl http://localhost:8080/api/auth/signup --request "POST" --header "Content-Type: application/json" --data '{"email": "alice@example.com", "password": "s3cret"}'
func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	u, err := s.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*u))
}

// login authenticates and returns an access token.
//
//	> curl http://localhost:8080/api/auth/login --request "POST" --header "Content-Type: application/json" --data '{"email": "alice@example.com", "password": "s3cret"}'
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	tok, _, err := s.auth.LoginWithIP(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: "bearer"})
}

// me returns the authenticated account.
func (s *Server) me(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	u, err := s.auth.UserByID(c.Request.Context(), userID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}
