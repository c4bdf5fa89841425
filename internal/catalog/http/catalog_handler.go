// Package http provides HTTP handlers for the reference catalogs.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	"github.com/allisson/staffdocs/internal/catalog/domain"
	"github.com/allisson/staffdocs/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/staffdocs/internal/catalog/usecase"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/httputil"
	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// CatalogHandler serves all three catalogs; the :kind path segment selects
// which one.
type CatalogHandler struct {
	catalogUseCase catalogUseCase.CatalogUseCase
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog handler with required dependencies.
func NewCatalogHandler(useCase catalogUseCase.CatalogUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: useCase,
		logger:         logger,
	}
}

func (h *CatalogHandler) principal(c *gin.Context) (authDomain.Principal, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return principal, ok
}

func (h *CatalogHandler) kind(c *gin.Context) (domain.Kind, bool) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return "", false
	}
	return kind, true
}

func (h *CatalogHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *CatalogHandler) handleError(c *gin.Context, err error, role authDomain.Role) {
	authHTTP.HandleForbiddenGin(c, err, role, h.logger)
}

// CreateItemHandler adds an entry to a catalog.
// POST /api/catalog/:kind - Admin only.
func (h *CatalogHandler) CreateItemHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.catalogUseCase.Create(c.Request.Context(), principal, kind, &domain.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusCreated, dto.NewItemResponse(item))
}

// GetItemHandler retrieves a catalog entry.
// GET /api/catalog/:kind/:id - Any authenticated principal.
func (h *CatalogHandler) GetItemHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.catalogUseCase.Get(c.Request.Context(), principal, kind, id)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// ListItemsHandler pages through a catalog.
// GET /api/catalog/:kind - Any authenticated principal.
func (h *CatalogHandler) ListItemsHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	items, err := h.catalogUseCase.List(c.Request.Context(), principal, kind, offset, limit)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemListResponse(items, offset, limit))
}

// UpdateItemHandler modifies a catalog entry.
// PUT /api/catalog/:kind/:id - Admin only.
func (h *CatalogHandler) UpdateItemHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.catalogUseCase.Update(c.Request.Context(), principal, kind, id, &domain.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// DeleteItemHandler removes a catalog entry.
// DELETE /api/catalog/:kind/:id - Admin only.
func (h *CatalogHandler) DeleteItemHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.catalogUseCase.Delete(c.Request.Context(), principal, kind, id); err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.Status(http.StatusNoContent)
}
