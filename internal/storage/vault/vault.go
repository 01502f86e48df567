// Package vault реализует хранилище учётных записей поверх файловой JSON-коллекции.
// Отвечает за поиск пользователя и замену хэша пароля; политика проверки
// паролей живёт уровнем выше, в сервисе аутентификации.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/product-catalog/internal/lib/password"
	"github.com/magabrotheeeer/product-catalog/internal/models"
	"github.com/magabrotheeeer/product-catalog/internal/storage/jsonfile"
)

// ErrUserNotFound возвращается, когда пользователь с указанным именем отсутствует.
var ErrUserNotFound = errors.New("user not found")

const (
	// DefaultAdminUsername — имя пользователя, создаваемого при посеве коллекции.
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword — пароль по умолчанию для посеянного пользователя.
	// Известный всем пароль — операционный риск: в любом реальном развёртывании
	// его нужно сменить сразу после первого входа.
	DefaultAdminPassword = "admin123"
)

// SeedUsers возвращает стартовое содержимое коллекции пользователей:
// единственную учётную запись администратора. Хэш вычисляется в момент посева.
func SeedUsers() ([]models.User, error) {
	hash, err := password.GetHash(DefaultAdminPassword)
	if err != nil {
		return nil, err
	}
	return []models.User{{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
	}}, nil
}

// Vault инкапсулирует файловую коллекцию пользователей.
type Vault struct {
	store *jsonfile.Store[models.User]
}

// New создаёт хранилище пользователей поверх переданной коллекции.
func New(store *jsonfile.Store[models.User]) *Vault {
	return &Vault{store: store}
}

// FindByUsername возвращает пользователя по имени (с учётом регистра)
// или ErrUserNotFound.
func (v *Vault) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.vault.FindByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	users, _, err := v.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdatePasswordHash заменяет хэш пароля пользователя и перезаписывает
// коллекцию целиком. Если пользователя нет, возвращает ErrUserNotFound
// и не пишет в файл.
func (v *Vault) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	const op = "storage.vault.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := v.store.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Username == username {
				users[i].PasswordHash = passwordHash
				return users, nil
			}
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
