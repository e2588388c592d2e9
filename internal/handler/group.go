package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/treinofacil/trainsheet-api/internal/service"
)

type GroupHandler struct {
	service *service.GroupService
}

func NewGroupHandler(service *service.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

func (h *GroupHandler) Create(c *gin.Context) {
	var input service.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	group, err := h.service.Create(ctx, &input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create exercise group")
		return
	}

	respond(c, http.StatusCreated, group)
}

func (h *GroupHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	ctx := c.Request.Context()
	groups, total, err := h.service.List(ctx, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list exercise groups")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"groups": groups,
		"total":  total,
	})
}

func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	ctx := c.Request.Context()
	group, err := h.service.Get(ctx, id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load exercise group")
		return
	}

	if group == nil {
		respondError(c, http.StatusNotFound, "Exercise group not found")
		return
	}

	respond(c, http.StatusOK, group)
}

func (h *GroupHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	var req struct {
		Name       *string `json:"name"`
		CategoryID *uint   `json:"category_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Update(ctx, id, updates); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update exercise group")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Exercise group updated"})
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid group ID")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Delete(ctx, id); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete exercise group")
		return
	}

	respond(c, http.StatusOK, gin.H{"message": "Exercise group deleted"})
}
