package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Sabogal22/Sistema-de-inventario/internal/apierror"
	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns the reference data items point to: categories,
// locations and the administrative status labels. Categories and locations
// are symmetric namespaces with identical rules; status labels are seeded and
// read-only through the API.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCatalogEntryRequest) (*dto.CatalogEntryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CatalogEntryResponse, error)
	RenameCategory(ctx context.Context, id uuid.UUID, req dto.RenameCatalogEntryRequest) (*dto.CatalogEntryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateLocation(ctx context.Context, req dto.CreateCatalogEntryRequest) (*dto.CatalogEntryResponse, error)
	ListLocations(ctx context.Context) ([]dto.CatalogEntryResponse, error)
	RenameLocation(ctx context.Context, id uuid.UUID, req dto.RenameCatalogEntryRequest) (*dto.CatalogEntryResponse, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	ListStatuses(ctx context.Context) ([]dto.CatalogEntryResponse, error)
	SeedStatuses(ctx context.Context) error
}

type catalogService struct {
	categories repository.CategoryRepository
	locations  repository.LocationRepository
	statuses   repository.StatusRepository
}

func NewCatalogService(
	categories repository.CategoryRepository,
	locations repository.LocationRepository,
	statuses repository.StatusRepository,
) CatalogService {
	return &catalogService{categories: categories, locations: locations, statuses: statuses}
}

// cleanName trims the name and rejects empty results.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apierror.Validation("El nombre no puede estar vacío")
	}
	return name, nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	existing, err := s.categories.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("Ya existe una categoría con ese nombre")
	}

	c := &model.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CatalogEntryResponse{ID: c.ID, Name: c.Name}, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CatalogEntryResponse, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, dto.CatalogEntryResponse{ID: c.ID, Name: c.Name})
	}
	return result, nil
}

func (s *catalogService) RenameCategory(ctx context.Context, id uuid.UUID, req dto.RenameCatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Categoría no encontrada")
		}
		return nil, err
	}
	if !strings.EqualFold(name, c.Name) {
		existing, err := s.categories.FindByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.Conflict("Ya existe una categoría con ese nombre")
		}
	}
	c.Name = name
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CatalogEntryResponse{ID: c.ID, Name: c.Name}, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Categoría no encontrada")
		}
		return err
	}
	// Block-on-conflict: a referenced category is never cascaded or reassigned.
	n, err := s.categories.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("La categoría tiene ítems asociados y no puede eliminarse")
	}
	return s.categories.Delete(ctx, id)
}

// ── Locations ────────────────────────────────────────────────────────────────

func (s *catalogService) CreateLocation(ctx context.Context, req dto.CreateCatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	existing, err := s.locations.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("Ya existe una ubicación con ese nombre")
	}

	l := &model.Location{Name: name}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.CatalogEntryResponse{ID: l.ID, Name: l.Name}, nil
}

func (s *catalogService) ListLocations(ctx context.Context) ([]dto.CatalogEntryResponse, error) {
	list, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, l := range list {
		result = append(result, dto.CatalogEntryResponse{ID: l.ID, Name: l.Name})
	}
	return result, nil
}

func (s *catalogService) RenameLocation(ctx context.Context, id uuid.UUID, req dto.RenameCatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Ubicación no encontrada")
		}
		return nil, err
	}
	if !strings.EqualFold(name, l.Name) {
		existing, err := s.locations.FindByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.Conflict("Ya existe una ubicación con ese nombre")
		}
	}
	l.Name = name
	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	return &dto.CatalogEntryResponse{ID: l.ID, Name: l.Name}, nil
}

func (s *catalogService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locations.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Ubicación no encontrada")
		}
		return err
	}
	n, err := s.locations.CountItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Conflict("La ubicación tiene ítems asociados y no puede eliminarse")
	}
	return s.locations.Delete(ctx, id)
}

// ── Status labels ────────────────────────────────────────────────────────────

func (s *catalogService) ListStatuses(ctx context.Context) ([]dto.CatalogEntryResponse, error) {
	list, err := s.statuses.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, st := range list {
		result = append(result, dto.CatalogEntryResponse{ID: st.ID, Name: st.Name})
	}
	return result, nil
}

// SeedStatuses inserts the default administrative labels if they are missing.
// Safe to run on every startup.
func (s *catalogService) SeedStatuses(ctx context.Context) error {
	for _, name := range model.DefaultStatusNames {
		_, err := s.statuses.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.statuses.Create(ctx, &model.Status{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
