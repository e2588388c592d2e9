package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/service"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		CategoryID  *uint  `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise := &models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		CategoryID:  req.CategoryID,
	}

	ctx := c.Request.Context()
	if err := h.service.CreateExercise(ctx, exercise); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}

	respond(c, http.StatusCreated, exercise)
}

// Handles GET /admin/exercises?search=&page=&per_page=
// The search filter backs the autocomplete field in the sheet editor.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	limit, offset := parsePagination(c)
	search := c.Query("search")

	ctx := c.Request.Context()
	exercises, total, err := h.service.ListExercises(ctx, search, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"exercises": exercises,
		"total":     total,
	})
}

func (h *CatalogHandler) GetExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	ctx := c.Request.Context()
	exercise, err := h.service.GetExercise(ctx, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load exercise")
		return
	}

	if exercise == nil {
		respondError(c, http.StatusNotFound, "Exercise not found")
		return
	}

	respond(c, http.StatusOK, exercise)
}

func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		CategoryID  *uint   `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.UpdateExercise(ctx, id, updates); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update exercise")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Exercise updated"})
}

func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.DeleteExercise(ctx, id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete exercise")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Exercise deleted"})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category := &models.ExerciseCategory{Name: req.Name}

	ctx := c.Request.Context()
	if err := h.service.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respond(c, http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	respond(c, http.StatusOK, categories)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.service.UpdateCategory(ctx, id, map[string]interface{}{"name": req.Name}); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Category updated"})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.DeleteCategory(ctx, id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *CatalogHandler) CreateTechnique(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	technique := &models.MethodTechnique{
		Name:        req.Name,
		Description: req.Description,
	}

	ctx := c.Request.Context()
	if err := h.service.CreateTechnique(ctx, technique); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create technique")
		return
	}

	respond(c, http.StatusCreated, technique)
}

func (h *CatalogHandler) ListTechniques(c *gin.Context) {
	ctx := c.Request.Context()
	techniques, err := h.service.ListTechniques(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list techniques")
		return
	}

	respond(c, http.StatusOK, techniques)
}

func (h *CatalogHandler) UpdateTechnique(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid technique ID")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.UpdateTechnique(ctx, id, updates); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update technique")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Technique updated"})
}

func (h *CatalogHandler) DeleteTechnique(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid technique ID")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.DeleteTechnique(ctx, id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete technique")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Technique deleted"})
}
