package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Register(ctx, req.Email, req.Password, req.Name, "user"); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Account created"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respond(c, http.StatusOK, gin.H{"token": token})
}

// Handles GET /admin/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.service.ListUsers(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respond(c, http.StatusOK, users)
}

// Handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx := c.Request.Context()
	user, err := h.service.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respond(c, http.StatusOK, user)
}
