// Package catalog реализует хранилище товаров поверх файловой JSON-коллекции.
// Предоставляет методы создания, чтения, обновления и удаления записей,
// а также управление пространством идентификаторов.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/product-catalog/internal/models"
	"github.com/magabrotheeeer/product-catalog/internal/storage/jsonfile"
)

// ErrProductNotFound возвращается, когда товар с указанным id отсутствует в коллекции.
var ErrProductNotFound = errors.New("product not found")

// SeedProducts возвращает стартовое содержимое каталога: один образец товара.
func SeedProducts() ([]models.Product, error) {
	return []models.Product{{
		ID:       1,
		Name:     "Oval Wall Mirror with Warm/Cold LED",
		Price:    "89.90",
		Category: "kitchen",
		Image:    "/assets/products/mirror01.jpg",
		Tag:      "Best seller",
		URL:      "https://example.com/p/oval-mirror-led",
	}}, nil
}

// Storage инкапсулирует файловую коллекцию товаров.
type Storage struct {
	store *jsonfile.Store[models.Product]
}

// New создаёт хранилище товаров поверх переданной коллекции.
func New(store *jsonfile.Store[models.Product]) *Storage {
	return &Storage{store: store}
}

// List возвращает все товары каталога. Чтение самовосстанавливающееся:
// повреждённый файл пересоздаётся, и вызывающий получает стартовые данные.
func (s *Storage) List(ctx context.Context) ([]models.Product, error) {
	const op = "storage.catalog.List"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, _, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Read возвращает товар по id или ErrProductNotFound.
func (s *Storage) Read(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.catalog.Read"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, _, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Create добавляет новый товар, назначая id = max(existing) + 1 (1 для пустой коллекции).
// Назначенный id всегда побеждает id из полей запроса. Идентификаторы не
// переиспользуются после удаления в пределах жизни файла.
func (s *Storage) Create(ctx context.Context, fields map[string]any) (*models.Product, error) {
	const op = "storage.catalog.Create"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var created models.Product
	_, err := s.store.Update(func(items []models.Product) ([]models.Product, error) {
		next := 1
		for _, p := range items {
			if p.ID >= next {
				next = p.ID + 1
			}
		}
		created = models.NewProduct(fields)
		created.ID = next
		return append(items, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// Update накладывает поля запроса на существующий товар (id закреплён за
// параметром пути) и перезаписывает коллекцию. Если товара нет, возвращает
// ErrProductNotFound и не пишет в файл.
func (s *Storage) Update(ctx context.Context, id int, fields map[string]any) (*models.Product, error) {
	const op = "storage.catalog.Update"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var updated models.Product
	_, err := s.store.Update(func(items []models.Product) ([]models.Product, error) {
		for i, p := range items {
			if p.ID == id {
				updated = p.Merge(fields)
				updated.ID = id
				items[i] = updated
				return items, nil
			}
		}
		return nil, ErrProductNotFound
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// Remove удаляет товар по id и перезаписывает коллекцию.
// Если товара нет, возвращает ErrProductNotFound и не пишет в файл.
func (s *Storage) Remove(ctx context.Context, id int) error {
	const op = "storage.catalog.Remove"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.store.Update(func(items []models.Product) ([]models.Product, error) {
		kept := make([]models.Product, 0, len(items))
		for _, p := range items {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(items) {
			return nil, ErrProductNotFound
		}
		return kept, nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
