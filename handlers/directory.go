package handlers

import (
	"errors"
	"net/http"

	directoryRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/directory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DirectoryHandler serves read-only display lookups against the identity
// service's user and provider collections.
type DirectoryHandler struct {
	Users     directoryRepo.UserDirectory
	Providers directoryRepo.ProviderDirectory
	Logger    *zap.Logger
}

// NewDirectoryHandler builds a DirectoryHandler.
func NewDirectoryHandler(users directoryRepo.UserDirectory, providers directoryRepo.ProviderDirectory, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{Users: users, Providers: providers, Logger: logger}
}

// GetUser handles GET /api/users/:id.
func (h *DirectoryHandler) GetUser(c *gin.Context) {
	user, err := h.Users.GetUserByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, directoryRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.Logger.Error("failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProvider handles GET /api/providers/:id.
func (h *DirectoryHandler) GetProvider(c *gin.Context) {
	provider, err := h.Providers.GetProviderByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, directoryRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	if err != nil {
		h.Logger.Error("failed to fetch provider", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, provider)
}
