package handler

import (
	"net/http"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/middleware"
	"github.com/Sabogal22/Sistema-de-inventario/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
		return uuid.Nil, false
	}
	return id, true
}

// List returns the authenticated user's notifications, newest first.
func (h *NotificationsHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) MarkAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Mark flips a single notification to read. The service rejects actors that
// are neither the recipient nor an admin.
func (h *NotificationsHandler) Mark(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), id, actorID, middleware.GetClaims(c).Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationsHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID, middleware.GetClaims(c).Role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Send creates a manual notification for another user. The service rejects
// non-admin senders; the role comes from the JWT, never the body.
func (h *NotificationsHandler) Send(c *gin.Context) {
	var req dto.SendNotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Send(c.Request.Context(), claims.Role, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
