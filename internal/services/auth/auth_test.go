package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/product-catalog/internal/lib/password"
	"github.com/magabrotheeeer/product-catalog/internal/models"
	"github.com/magabrotheeeer/product-catalog/internal/storage/vault"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)
	return args.Error(0)
}

func newTestMaker() jwt.Maker {
	return jwt.NewJWTMaker("test_secret_key", 12*time.Hour)
}

func adminUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{Username: "admin", PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "admin").
		Return(adminUser(t, "admin123"), nil)

	token, err := service.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	username, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	repo.AssertExpectations(t)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "nobody").
		Return(nil, vault.ErrUserNotFound)

	token, err := service.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)

	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "admin").
		Return(adminUser(t, "admin123"), nil)

	token, err := service.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)

	repo.AssertExpectations(t)
}

func TestRotatePassword_Success(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "admin").
		Return(adminUser(t, "admin123"), nil)

	var storedHash string
	repo.On("UpdatePasswordHash", mock.Anything, "admin", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	err := service.RotatePassword(context.Background(), "admin", "admin123", "newsecret")
	require.NoError(t, err)

	// в хранилище ушёл хэш нового пароля, а не открытый текст
	assert.NotEqual(t, "newsecret", storedHash)
	assert.NoError(t, password.CompareHash(storedHash, "newsecret"))

	repo.AssertExpectations(t)
}

func TestRotatePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "admin").
		Return(adminUser(t, "admin123"), nil)

	err := service.RotatePassword(context.Background(), "admin", "wrong_old", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestRotatePassword_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	repo.On("FindByUsername", mock.Anything, "nobody").
		Return(nil, vault.ErrUserNotFound)

	err := service.RotatePassword(context.Background(), "nobody", "old", "new")
	assert.ErrorIs(t, err, vault.ErrUserNotFound)

	repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateToken_Invalid(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewAuthService(repo, newTestMaker())

	username, err := service.ValidateToken(context.Background(), "not.a.token")
	assert.Error(t, err)
	assert.Empty(t, username)
}
