package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devforge-portal/portal-backend/internal/storage/dynamo"
	"github.com/devforge-portal/portal-backend/internal/users/domain"
)

const (
	msgInvalid  = "Invalid user object"
	msgNotFound = "User not found"
	msgInternal = "Internal server error"
)

// createResponse is the one place the temporary password crosses the wire.
type createResponse struct {
	domain.User
	TempPassword string `json:"temp_password"`
}

func (h *Handler) create(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateUser(raw); err != nil {
		h.log.Debug("user rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	u, tempPassword, err := h.svc.Create(c.Request.Context(), domain.ReconcileUser(raw))
	if err != nil {
		h.log.Error("create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusCreated, createResponse{User: u, TempPassword: tempPassword})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("get user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	domain.ScrubServerFields(raw)
	if err := domain.ValidateUser(raw); err != nil {
		h.log.Debug("user update rejected", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
		return
	}

	u := domain.ReconcileUser(raw)
	u.UpdatedAt = dynamo.NowISO()

	updated, err := h.svc.Update(c.Request.Context(), id, u)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("update user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.log.Error("delete user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.Status(http.StatusNoContent)
}

// sync upserts the store record for the authenticated identity account. It is
// called by the frontend right after a self-service signup is confirmed.
func (h *Handler) sync(c *gin.Context) {
	sub := c.GetString("user_sub")
	if sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}
	email := c.GetString("email")

	var body struct {
		Name string `json:"name,omitempty"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalid})
			return
		}
	}

	u, err := h.svc.Sync(c.Request.Context(), sub, email, body.Name)
	if err != nil {
		h.log.Error("sync user", zap.String("sub", sub), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
		return
	}

	c.JSON(http.StatusOK, u)
}
