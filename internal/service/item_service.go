package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"
	"github.com/Sabogal22/Sistema-de-inventario/internal/stockstatus"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemService is the item registry: creation with declared initial stock,
// patch-style metadata updates, reads with the derived stock status attached,
// and cascading deletion. Stock itself is out of its reach; that belongs to
// StockService.
type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest, imagePath *string) (*dto.ItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	statuses   repository.StatusRepository
	users      repository.UserRepository
	history    repository.StockHistoryRepository
	notifs     repository.NotificationRepository
}

func NewItemService(
	items repository.ItemRepository,
	categories repository.CategoryRepository,
	locations repository.LocationRepository,
	statuses repository.StatusRepository,
	users repository.UserRepository,
	history repository.StockHistoryRepository,
	notifs repository.NotificationRepository,
) ItemService {
	return &itemService{
		items:      items,
		categories: categories,
		locations:  locations,
		statuses:   statuses,
		users:      users,
		history:    history,
		notifs:     notifs,
	}
}

// mapItem converts a model to a DTO response, recomputing the derived stock
// status. Never reads a stored status, see stockstatus package doc.
func mapItem(it *model.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:          it.ID.String(),
		Name:        it.Name,
		Description: it.Description,
		CategoryID:  it.CategoryID.String(),
		LocationID:  it.LocationID.String(),
		StatusID:    it.StatusID.String(),
		Stock:       it.Stock,
		MinStock:    it.MinStock,
		StockStatus: string(stockstatus.Derive(it.Stock, it.MinStock)),
		QRCode:      it.QRCode,
		Image:       it.Image,
		CreatedAt:   it.CreatedAt.UTC().Format(time.RFC3339),
	}
	if it.Category != nil {
		resp.Category = it.Category.Name
	}
	if it.Location != nil {
		resp.Location = it.Location.Name
	}
	if it.Status != nil {
		resp.Status = it.Status.Name
	}
	if it.ResponsibleUserID != nil {
		s := it.ResponsibleUserID.String()
		resp.ResponsibleUserID = &s
	}
	return resp
}

// resolveCatalogRefs checks every supplied foreign key against the catalog.
// Missing references fail with NotFound so the caller can distinguish them
// from malformed input.
func (s *itemService) resolveCatalogRefs(ctx context.Context, categoryID, locationID, statusID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.categories.FindByID(ctx, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Categoría no encontrada")
			}
			return err
		}
	}
	if locationID != nil {
		if _, err := s.locations.FindByID(ctx, *locationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Ubicación no encontrada")
			}
			return err
		}
	}
	if statusID != nil {
		if _, err := s.statuses.FindByID(ctx, *statusID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Estado no encontrado")
			}
			return err
		}
	}
	return nil
}

func (s *itemService) resolveResponsible(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	uid, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apierror.Validation("responsible_user_id inválido")
	}
	if _, err := s.users.FindByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Usuario responsable no encontrado")
		}
		return nil, err
	}
	return &uid, nil
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest, imagePath *string) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierror.Validation("El nombre no puede estar vacío")
	}
	if req.Stock < 0 {
		return nil, apierror.Validation("El stock inicial no puede ser negativo")
	}
	if req.MinStock < 1 {
		return nil, apierror.Validation("El stock mínimo debe ser al menos 1")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Validation("category_id inválido")
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, apierror.Validation("location_id inválido")
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		return nil, apierror.Validation("status_id inválido")
	}
	if err := s.resolveCatalogRefs(ctx, &categoryID, &locationID, &statusID); err != nil {
		return nil, err
	}
	responsible, err := s.resolveResponsible(ctx, req.ResponsibleUserID)
	if err != nil {
		return nil, err
	}

	// Initial stock is declared, not added: no ledger entry is written here.
	it := &model.Item{
		Name:              name,
		Description:       req.Description,
		CategoryID:        categoryID,
		LocationID:        locationID,
		StatusID:          statusID,
		Stock:             req.Stock,
		MinStock:          req.MinStock,
		ResponsibleUserID: responsible,
		QRCode:            req.QRCode,
		Image:             imagePath,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	created, err := s.items.FindByID(ctx, it.ID)
	if err != nil {
		return mapItem(it), nil
	}
	return mapItem(created), nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	it, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ítem no encontrado")
		}
		return nil, err
	}
	return mapItem(it), nil
}

func (s *itemService) List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *mapItem(&items[i]))
	}
	return result, nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	it, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ítem no encontrado")
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apierror.Validation("El nombre no puede estar vacío")
		}
		it.Name = name
	}
	if req.Description != nil {
		it.Description = req.Description
	}

	var categoryID, locationID, statusID *uuid.UUID
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("category_id inválido")
		}
		categoryID = &cid
	}
	if req.LocationID != nil {
		lid, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, apierror.Validation("location_id inválido")
		}
		locationID = &lid
	}
	if req.StatusID != nil {
		sid, err := uuid.Parse(*req.StatusID)
		if err != nil {
			return nil, apierror.Validation("status_id inválido")
		}
		statusID = &sid
	}
	if err := s.resolveCatalogRefs(ctx, categoryID, locationID, statusID); err != nil {
		return nil, err
	}
	if categoryID != nil {
		it.CategoryID = *categoryID
	}
	if locationID != nil {
		it.LocationID = *locationID
	}
	if statusID != nil {
		it.StatusID = *statusID
	}

	if req.MinStock != nil {
		if *req.MinStock < 1 {
			return nil, apierror.Validation("El stock mínimo debe ser al menos 1")
		}
		it.MinStock = *req.MinStock
	}
	if req.ResponsibleUserID != nil {
		responsible, err := s.resolveResponsible(ctx, req.ResponsibleUserID)
		if err != nil {
			return nil, err
		}
		it.ResponsibleUserID = responsible
	}
	if req.QRCode != nil {
		it.QRCode = req.QRCode
	}

	// Drop preloads so gorm does not try to upsert associations on Save.
	it.Category, it.Location, it.Status = nil, nil, nil

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	updated, err := s.items.FindByID(ctx, id)
	if err != nil {
		return mapItem(it), nil
	}
	return mapItem(updated), nil
}

// Delete removes the item together with its stock history and any
// notifications referencing it, in one transaction.
func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Ítem no encontrado")
		}
		return err
	}
	return runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		if err := s.history.DeleteByItemTx(tx, id); err != nil {
			return err
		}
		if err := s.notifs.DeleteByItemTx(tx, id); err != nil {
			return err
		}
		return s.items.DeleteTx(tx, id)
	})
}
