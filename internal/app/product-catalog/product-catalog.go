// Package productcatalog собирает приложение: файловые хранилища, сервисы,
// маршруты и HTTP-сервер с корректным завершением.
package productcatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/product-catalog/internal/config"
	"github.com/magabrotheeeer/product-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/product-catalog/internal/models"
	authservice "github.com/magabrotheeeer/product-catalog/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/product-catalog/internal/services/catalog"
	catalogstore "github.com/magabrotheeeer/product-catalog/internal/storage/catalog"
	"github.com/magabrotheeeer/product-catalog/internal/storage/jsonfile"
	"github.com/magabrotheeeer/product-catalog/internal/storage/vault"
)

// App инкапсулирует HTTP-сервер приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New строит приложение: готовит каталог данных, поднимает файловые коллекции
// (невозможность записать даже стартовые данные — фатальная ошибка),
// собирает сервисы и маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	productStore := jsonfile.New[models.Product]("products", cfg.ProductsFile(), catalogstore.SeedProducts, logger)
	userStore := jsonfile.New[models.User]("users", cfg.UsersFile(), vault.SeedUsers, logger)
	if err := productStore.Ensure(); err != nil {
		return nil, err
	}
	if err := userStore.Ensure(); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(vault.New(userStore), jwtMaker)
	catalogService := catalogservice.NewCatalogService(catalogstore.New(productStore), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, catalogService, authService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
