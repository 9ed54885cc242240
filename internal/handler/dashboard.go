package handler

import (
	"net/http"

	"github.com/Sabogal22/Sistema-de-inventario/internal/infra"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc         service.DashboardService
	items       repository.ItemRepository
	storagePath string
}

func NewDashboardHandler(svc service.DashboardService, items repository.ItemRepository, storagePath string) *DashboardHandler {
	return &DashboardHandler{svc: svc, items: items, storagePath: storagePath}
}

// Summary returns the per-status item counts for the dashboard cards.
func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report generates the full inventory as a PDF and streams it back.
func (h *DashboardHandler) Report(c *gin.Context) {
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateInventoryReportPDF(items, h.storagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=inventario.pdf")
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
