package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/models"
	"github.com/treinofacil/trainsheet-api/internal/service"
)

type SheetHandler struct {
	service *service.SheetService
}

func NewSheetHandler(service *service.SheetService) *SheetHandler {
	return &SheetHandler{service: service}
}

// Handles POST /admin/sheets/complete — creates a sheet with all of its
// days, groups, methods and configurations in one transaction.
func (h *SheetHandler) CreateComplete(c *gin.Context) {
	var input service.CompleteSheetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	result, err := h.service.CreateComplete(ctx, &input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond(c, http.StatusCreated, result)
}

func (h *SheetHandler) Create(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		PublicName string `json:"public_name"`
		Slug       string `json:"slug"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	sheet := &models.TrainingSheet{
		Name:       req.Name,
		PublicName: req.PublicName,
		Slug:       req.Slug,
	}

	ctx := c.Request.Context()
	if err := h.service.Create(ctx, sheet); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create training sheet")
		return
	}

	respond(c, http.StatusCreated, sheet)
}

func (h *SheetHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	ctx := c.Request.Context()
	sheets, total, err := h.service.List(ctx, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list training sheets")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"sheets": sheets,
		"total":  total,
	})
}

func (h *SheetHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid sheet ID")
		return
	}

	ctx := c.Request.Context()
	sheet, err := h.service.Get(ctx, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load training sheet")
		return
	}

	if sheet == nil {
		respondError(c, http.StatusNotFound, "Training sheet not found")
		return
	}

	respond(c, http.StatusOK, sheet)
}

func (h *SheetHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid sheet ID")
		return
	}

	var req struct {
		Name       *string `json:"name"`
		PublicName *string `json:"public_name"`
		Slug       *string `json:"slug"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PublicName != nil {
		updates["public_name"] = *req.PublicName
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Update(ctx, id, updates); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update training sheet")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Training sheet updated"})
}

func (h *SheetHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid sheet ID")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Delete(ctx, id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete training sheet")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Training sheet deleted"})
}

// Handles GET /programs/:slug — the public program view used by end users.
func (h *SheetHandler) GetProgram(c *gin.Context) {
	slug := c.Param("slug")

	ctx := c.Request.Context()
	sheet, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load program")
		return
	}

	if sheet == nil {
		respondError(c, http.StatusNotFound, "Program not found")
		return
	}

	respond(c, http.StatusOK, sheet)
}
