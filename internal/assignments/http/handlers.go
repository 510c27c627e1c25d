package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/assignments/domain"
	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
)

const (
	msgInvalid  = "Invalid assignment object"
	msgNotFound = "Assignment not found"
	msgInternal = "Internal server error"
)

func (h *Handler) create(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateAssignment(raw); err != nil {
		h.log.Debug("assignment rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	a := domain.ReconcileAssignment(raw)
	a.ID = uuid.NewString()
	now := dynamo.NowISO()
	a.CreatedAt, a.UpdatedAt = now, now

	if err := h.store.Create(c.Request.Context(), a); err != nil {
		h.log.Error("create assignment", zap.String("id", a.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusCreated, h.resolver.Resolve(c.Request.Context(), a))
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context(), c.Query("project_id"), c.Query("user_id"))
	if err != nil {
		h.log.Error("list assignments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, h.resolver.ResolveAll(c.Request.Context(), items))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	a, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("get assignment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, h.resolver.Resolve(c.Request.Context(), a))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateAssignment(raw); err != nil {
		h.log.Debug("assignment update rejected", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	a := domain.ReconcileAssignment(raw)
	a.UpdatedAt = dynamo.NowISO()

	updated, err := h.store.Update(c.Request.Context(), id, a)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("update assignment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, h.resolver.Resolve(c.Request.Context(), updated))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("delete assignment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.Status(http.StatusNoContent)
}
