package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kurihiro0119/course-site/internal/errors"
	"github.com/kurihiro0119/course-site/internal/storage"
)

// Handler handles preview server requests
type Handler struct {
	store storage.Storage
}

// NewHandler creates a new API handler
func NewHandler(store storage.Storage) *Handler {
	return &Handler{
		store: store,
	}
}

// GetCache lists the keys of a cache namespace
// GET /api/v1/cache/:name
func (h *Handler) GetCache(c *gin.Context) {
	name := c.Param("name")
	if !knownNamespace(name) {
		respondError(c, apperrors.NewNotFoundError("cache "+name))
		return
	}

	entries, err := h.store.Load(c.Request.Context(), name)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to load cache", err))
		return
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"name":  name,
			"count": len(keys),
			"keys":  keys,
		},
	})
}

// GetCacheEntry returns one cached blob
// GET /api/v1/cache/:name/entry?key=...
func (h *Handler) GetCacheEntry(c *gin.Context) {
	name := c.Param("name")
	if !knownNamespace(name) {
		respondError(c, apperrors.NewNotFoundError("cache "+name))
		return
	}
	key := c.Query("key")
	if key == "" {
		respondError(c, apperrors.NewBadRequestError("key is required"))
		return
	}

	entries, err := h.store.Load(c.Request.Context(), name)
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to load cache", err))
		return
	}
	value, ok := entries[key]
	if !ok {
		respondError(c, apperrors.NewNotFoundError("cache entry "+key))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": value,
	})
}

// HealthCheck returns the health status
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func knownNamespace(name string) bool {
	return name == storage.NamespaceGitHubPeople || name == storage.NamespaceForem
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeBadRequest, apperrors.ErrCodeFormat, apperrors.ErrCodeNameMismatch, apperrors.ErrCodeInvalidProject:
			status = http.StatusBadRequest
		case apperrors.ErrCodeRateLimited:
			status = http.StatusTooManyRequests
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
