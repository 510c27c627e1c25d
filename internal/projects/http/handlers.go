package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/projects/domain"
	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
)

const (
	msgInvalid  = "Invalid project object"
	msgNotFound = "Project not found"
	msgInternal = "Internal server error"
)

func (h *Handler) create(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateProject(raw); err != nil {
		h.log.Debug("project rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	p := domain.ReconcileProject(raw)
	p.ID = uuid.NewString()
	now := dynamo.NowISO()
	p.CreatedAt, p.UpdatedAt = now, now

	if err := h.store.Create(c.Request.Context(), p); err != nil {
		h.log.Error("create project", zap.String("id", p.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	var (
		items []domain.Project
		err   error
	)
	if status := c.Query("status"); status != "" {
		items, err = h.store.ListByStatus(c.Request.Context(), domain.Status(status))
	} else {
		items, err = h.store.List(c.Request.Context())
	}
	if err != nil {
		h.log.Error("list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("get project", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateProject(raw); err != nil {
		h.log.Debug("project update rejected", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	p := domain.ReconcileProject(raw)
	p.UpdatedAt = dynamo.NowISO()

	updated, err := h.store.Update(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("update project", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("delete project", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.Status(http.StatusNoContent)
}
