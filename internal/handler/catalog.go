package handler

import (
	"net/http"

	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories, locations and the read-only status list.
// Categories and locations share the same request shapes and rules, so the
// handlers are thin wrappers over the symmetric service methods.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCatalogEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var req dto.RenameCatalogEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RenameCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListLocations(c *gin.Context) {
	resp, err := h.svc.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateCatalogEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateLocation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) UpdateLocation(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var req dto.RenameCatalogEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RenameLocation(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteLocation(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteLocation(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	resp, err := h.svc.ListStatuses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
