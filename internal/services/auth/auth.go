// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/product-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/product-catalog/internal/lib/password"
	"github.com/magabrotheeeer/product-catalog/internal/models"
	"github.com/magabrotheeeer/product-catalog/internal/storage/vault"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль
// или неверном текущем пароле при его смене.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// FindByUsername возвращает пользователя по имени или vault.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePasswordHash заменяет хэш пароля пользователя и сохраняет коллекцию.
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}

// AuthService отвечает за вход, смену пароля и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и выпускает JWT.
// Неизвестное имя и неверный пароль неразличимы для клиента:
// оба случая дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, vault.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.Username)
}

// RotatePassword перепроверяет текущий пароль и заменяет его новым.
// При неверном текущем пароле хранимый хэш не меняется. Уже выданные
// токены остаются действительными до истечения срока.
func (s *AuthService) RotatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, username, hash)
}

// ValidateToken проверяет JWT и возвращает имя пользователя из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
