package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"delivery-service/internal/model"

	"github.com/go-playground/validator/v10"
)

// DishService определяет интерфейс сервиса блюд, нужный обработчику
// обработчик зависит от интерфейса, а не от конкретной реализации
type DishService interface {
	GetByID(ctx context.Context, id string) (model.DishResponse, error)
	GetAll(ctx context.Context) ([]model.DishResponse, error)
	Create(ctx context.Context, in model.DishCreate) (model.DishResponse, error)
	Update(ctx context.Context, id string, in model.DishUpdate) (model.DishResponse, error)
	Delete(ctx context.Context, id string) error
}

// OrderService определяет интерфейс сервиса заказов, нужный обработчику
type OrderService interface {
	GetByID(ctx context.Context, id string) (model.OrderResponse, error)
	GetAll(ctx context.Context) ([]model.OrderResponse, error)
	Create(ctx context.Context, in model.OrderCreate) (model.OrderResponse, error)
	Update(ctx context.Context, id string, in model.OrderUpdate) (model.OrderResponse, error)
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает HTTP-запросы
type Handler struct {
	dishes DishService
	orders OrderService
	log    *slog.Logger
	mux    *http.ServeMux
}

// NewHandler создает новый экземпляр Handler
func NewHandler(dishes DishService, orders OrderService, log *slog.Logger) *Handler {
	h := &Handler{
		dishes: dishes,
		orders: orders,
		log:    log,
		mux:    http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP делает Handler совместимым с http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes регистрирует все эндпоинты
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.health)

	h.mux.HandleFunc("GET /dishes", h.getAllDishes)
	h.mux.HandleFunc("GET /dishes/{id}", h.getDish)
	h.mux.HandleFunc("POST /dishes", h.createDish)
	h.mux.HandleFunc("PATCH /dishes/{id}", h.updateDish)
	h.mux.HandleFunc("DELETE /dishes/{id}", h.deleteDish)

	h.mux.HandleFunc("GET /orders", h.getAllOrders)
	h.mux.HandleFunc("GET /orders/{id}", h.getOrder)
	h.mux.HandleFunc("POST /orders", h.createOrder)
	h.mux.HandleFunc("PATCH /orders/{id}", h.updateOrder)
	h.mux.HandleFunc("DELETE /orders/{id}", h.deleteOrder)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	dish, err := h.dishes.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dish)
}

func (h *Handler) getAllDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.dishes.GetAll(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dishes)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var in model.DishCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dish, err := h.dishes.Create(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	var in model.DishUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dish, err := h.dishes.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	if err := h.dishes.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) getAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAll(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in model.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.Create(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var in model.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondServiceError транслирует доменные ошибки в HTTP-статусы
// каждая ошибка таксономии различима на границе API; неожиданные сбои
// хранилища логируются и отдаются наружу обезличенным 500
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, model.ErrInvalidID):
		h.respondError(w, http.StatusBadRequest, "invalid id")
	case errors.As(err, &validationErrs):
		h.respondError(w, http.StatusBadRequest, "validation failed: "+validationErrs.Error())
	case errors.Is(err, model.ErrDishNotFound):
		h.respondError(w, http.StatusNotFound, "dish not found")
	case errors.Is(err, model.ErrOrderNotFound):
		h.respondError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, model.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, "user not found")
	default:
		h.log.Error("internal server error", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal JSON response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(response)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
