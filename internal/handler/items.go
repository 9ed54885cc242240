package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/middleware"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemsHandler struct {
	svc       service.ItemService
	stock     service.StockService
	search    service.DashboardService
	imagePath string
}

func NewItemsHandler(svc service.ItemService, stock service.StockService, search service.DashboardService, imagePath string) *ItemsHandler {
	return &ItemsHandler{svc: svc, stock: stock, search: search, imagePath: imagePath}
}

// Create handles POST /items/create/ as multipart/form-data with an optional
// image part. The declared stock becomes the item's opening balance without a
// ledger entry; only update-stock writes history.
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindFormAndValidate(c, &req) {
		return
	}

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if err := os.MkdirAll(h.imagePath, 0755); err != nil {
			respondError(c, err)
			return
		}
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.imagePath, name)); err != nil {
			respondError(c, err)
			return
		}
		imagePath = &name
	}

	resp, err := h.svc.Create(c.Request.Context(), req, imagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search handles GET /items/search/?q=. A blank query yields an empty list.
func (h *ItemsHandler) Search(c *gin.Context) {
	resp, err := h.search.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /items/update/:id/. The request shape has no stock
// field; stock only moves through the ledger endpoint.
func (h *ItemsHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStock handles POST /items/:id/update-stock/, the only write path for
// stock. The acting user from the JWT is recorded on the history entry.
func (h *ItemsHandler) UpdateStock(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	actorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return
	}

	resp, err := h.stock.ApplyChange(c.Request.Context(), id, req.Type, req.Quantity, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) StockHistory(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	resp, err := h.stock.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
