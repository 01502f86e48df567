// Package services содержит бизнес-логику для управления каталогом товаров.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// List возвращает все товары каталога.
	List(ctx context.Context) ([]models.Product, error)
	// Read возвращает товар по id или catalog.ErrProductNotFound.
	Read(ctx context.Context, id int) (*models.Product, error)
	// Create добавляет товар, назначая следующий свободный id.
	Create(ctx context.Context, fields map[string]any) (*models.Product, error)
	// Update накладывает поля на существующий товар, id закреплён.
	Update(ctx context.Context, id int, fields map[string]any) (*models.Product, error)
	// Remove удаляет товар по id.
	Remove(ctx context.Context, id int) error
}

// CatalogService реализует бизнес-логику работы с каталогом товаров.
type CatalogService struct {
	repo ProductRepository
	log  *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ProductRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo: repo,
		log:  log,
	}
}

// List возвращает полный каталог.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info("listed products", slog.Int("count", len(items)))
	return items, nil
}

// Read возвращает товар по id.
func (s *CatalogService) Read(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.Read(ctx, id)
}

// Create добавляет новый товар и возвращает его вместе с назначенным id.
func (s *CatalogService) Create(ctx context.Context, fields map[string]any) (*models.Product, error) {
	created, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new product", slog.Int("id", created.ID))
	return created, nil
}

// Update обновляет товар по id и возвращает результат слияния.
func (s *CatalogService) Update(ctx context.Context, id int, fields map[string]any) (*models.Product, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated product", slog.Int("id", id))
	return updated, nil
}

// Remove удаляет товар по id.
func (s *CatalogService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("removed product", slog.Int("id", id))
	return nil
}
