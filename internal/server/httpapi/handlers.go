package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "server is up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	account, token, err := s.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		case errors.Is(err, common.ErrorEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "this email is already registered"})
		default:
			s.logger.Error(c.Request.Context(), "registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"token":   token,
		"user":    account.Public(),
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	account, token, err := s.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		case errors.Is(err, common.ErrorInvalidCredentials):
			// Same payload for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		default:
			s.logger.Error(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    account.Public(),
	})
}

func (s *Server) profile(c *gin.Context) {
	accountID, ok := AccountIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	view, err := s.service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "profile lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, view)
}
