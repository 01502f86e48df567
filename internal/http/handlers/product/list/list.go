// Package list реализует HTTP-обработчик получения полного каталога товаров.
//
// Чтение не требует аутентификации и самовосстанавливающееся:
// повреждённый файл коллекции чинится на месте, клиент получает данные.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/product-catalog/internal/http/response"
	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/product-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики получения каталога.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
}

// Handler обрабатывает запросы на получение списка товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает все товары каталога.
// @Tags Products
// @Produce  json
// @Success 200 {array} models.Product "Каталог товаров"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения каталога"
// @Router /api/products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list products"))
		return
	}
	if res == nil {
		res = []models.Product{}
	}

	log.Info("listed products", slog.Int("count", len(res)))
	render.JSON(w, r, res)
}
