package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EmailDispatcher enqueues low-stock alert emails for async delivery.
// Implemented by worker.Dispatcher; nil-able for tests.
type EmailDispatcher interface {
	EnqueueLowStockEmail(ctx context.Context, payload worker.LowStockEmailPayload) error
}

// NotificationService owns per-user notifications: explicit admin sends and
// the internal low-stock trigger from the ledger.
type NotificationService interface {
	Send(ctx context.Context, senderRole string, req dto.SendNotificationRequest) (*dto.NotificationResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, actorID uuid.UUID, actorRole string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, actorID uuid.UUID, actorRole string) error

	LowStockNotifier
}

type notificationService struct {
	notifs     repository.NotificationRepository
	users      repository.UserRepository
	dispatcher EmailDispatcher
}

func NewNotificationService(
	notifs repository.NotificationRepository,
	users repository.UserRepository,
	dispatcher EmailDispatcher,
) NotificationService {
	return &notificationService{notifs: notifs, users: users, dispatcher: dispatcher}
}

func mapNotification(n *model.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.ItemID != nil {
		s := n.ItemID.String()
		resp.ItemID = &s
	}
	return resp
}

// Send is role-gated: only admins may push a notification to another user.
func (s *notificationService) Send(ctx context.Context, senderRole string, req dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	if senderRole != model.RoleAdmin {
		return nil, apierror.Permission("Solo un administrador puede enviar notificaciones")
	}
	recipientID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apierror.Validation("user_id inválido")
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario destinatario no encontrado")
		}
		return nil, err
	}

	n := &model.Notification{RecipientUserID: recipientID, Message: req.Message}
	if err := s.notifs.Create(ctx, n); err != nil {
		return nil, err
	}
	return mapNotification(n), nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	list, err := s.notifs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapNotification(&list[i]))
	}
	return result, nil
}

// findOwned loads a notification and checks that the actor may touch it:
// only the recipient or an admin can mark or delete it.
func (s *notificationService) findOwned(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*model.Notification, error) {
	n, err := s.notifs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Notificación no encontrada")
		}
		return nil, err
	}
	if n.RecipientUserID != actorID && actorRole != model.RoleAdmin {
		return nil, apierror.Permission("La notificación pertenece a otro usuario")
	}
	return n, nil
}

// MarkRead is idempotent: marking an already-read notification is a no-op.
func (s *notificationService) MarkRead(ctx context.Context, id, actorID uuid.UUID, actorRole string) error {
	if _, err := s.findOwned(ctx, id, actorID, actorRole); err != nil {
		return err
	}
	return s.notifs.MarkRead(ctx, id)
}

// MarkAllRead is idempotent by construction: already-read rows are skipped.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifs.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, id, actorID uuid.UUID, actorRole string) error {
	if _, err := s.findOwned(ctx, id, actorID, actorRole); err != nil {
		return err
	}
	return s.notifs.Delete(ctx, id)
}

// NotifyLowStock fans a low-stock alert out to the item's responsible user,
// or to every admin when the item has none. Called from the ledger after a
// committed mutation; partial failures are logged and swallowed so the stock
// change is never affected.
func (s *notificationService) NotifyLowStock(ctx context.Context, item *model.Item, newStock int) error {
	recipients, err := s.lowStockRecipients(ctx, item)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		log.Warn().Str("item_id", item.ID.String()).Msg("low-stock alert has no recipients")
		return nil
	}

	var message string
	if newStock == 0 {
		message = fmt.Sprintf("Stock agotado: %q no tiene unidades disponibles", item.Name)
	} else {
		message = fmt.Sprintf("Stock bajo: %q tiene %d unidades (mínimo %d)", item.Name, newStock, item.MinStock)
	}

	itemID := item.ID
	emails := make([]string, 0, len(recipients))
	for _, u := range recipients {
		n := &model.Notification{
			RecipientUserID: u.ID,
			Message:         message,
			ItemID:          &itemID,
		}
		if err := s.notifs.Create(ctx, n); err != nil {
			log.Error().Err(err).
				Str("recipient", u.ID.String()).
				Msg("failed to create low-stock notification")
			continue
		}
		emails = append(emails, u.Email)
	}

	if s.dispatcher != nil && len(emails) > 0 {
		payload := worker.LowStockEmailPayload{
			ItemName:   item.Name,
			Stock:      newStock,
			MinStock:   item.MinStock,
			Message:    message,
			Recipients: emails,
		}
		if err := s.dispatcher.EnqueueLowStockEmail(ctx, payload); err != nil {
			log.Error().Err(err).Msg("failed to enqueue low-stock email")
		}
	}
	return nil
}

func (s *notificationService) lowStockRecipients(ctx context.Context, item *model.Item) ([]model.User, error) {
	if item.ResponsibleUserID != nil {
		u, err := s.users.FindByID(ctx, *item.ResponsibleUserID)
		if err == nil {
			return []model.User{*u}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Responsible user gone, fall through to admins.
	}
	return s.users.ListAdmins(ctx)
}
