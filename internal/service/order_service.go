package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"delivery-service/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService инкапсулирует бизнес-логику работы с заказами
type OrderService struct {
	repo      OrderRepository
	users     UserRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewOrderService создаёт новый экземпляр сервиса заказов
func NewOrderService(repo OrderRepository, users UserRepository, publisher EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// GetByID получает заказ по его идентификатору
func (s *OrderService) GetByID(ctx context.Context, rawID string) (model.OrderResponse, error) {
	const op = "service.OrderService.GetByID"

	// идентификатор валидируется до любого обращения к хранилищу
	id, err := model.ParseID(rawID)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := order.Response()
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// GetAll получает все заказы в нативном порядке хранилища
func (s *OrderService) GetAll(ctx context.Context) ([]model.OrderResponse, error) {
	const op = "service.OrderService.GetAll"

	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses := make([]model.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp, err := order.Response()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Create создаёт новый заказ, время заказа проставляется сервером
// user_id проверяется до вставки; наличие самих блюд по dish_ids
// сервис НЕ проверяет — см. DESIGN.md
func (s *OrderService) Create(ctx context.Context, in model.OrderCreate) (model.OrderResponse, error) {
	const op = "service.OrderService.Create"
	log := s.log.With(slog.String("op", op), slog.String("user_id", in.UserID))

	if err := in.Validate(); err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	userID, err := model.ParseID(in.UserID)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	dishIDs, err := model.ParseIDs(in.DishIDs)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	order := model.Order{
		UserID:      userID,
		DishIDs:     dishIDs,
		TotalPrice:  in.TotalPrice,
		OrderStatus: in.OrderStatus,
		OrderTime:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		log.Error("failed to insert order", slog.String("error", err.Error()))
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	// перечитываем документ по выданному идентификатору:
	// вставка не обязана возвращать документ целиком
	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.ActionCreated, id.Hex())
	log.Info("order created", slog.String("order_id", id.Hex()))

	resp, err := created.Response()
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// Update применяет частичное обновление заказа
// если обновление меняет user_id, новая ссылка проверяется до мутации
// order_time никогда не обновляется
func (s *OrderService) Update(ctx context.Context, rawID string, in model.OrderUpdate) (model.OrderResponse, error) {
	const op = "service.OrderService.Update"
	log := s.log.With(slog.String("op", op), slog.String("order_id", rawID))

	id, err := model.ParseID(rawID)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := in.Validate(); err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.UserID != nil {
		userID, err := model.ParseID(*in.UserID)
		if err != nil {
			return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.checkUser(ctx, userID); err != nil {
			return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	set, err := in.SetFields()
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.ActionUpdated, rawID)
	log.Info("order updated", slog.Int("fields", len(set)))

	resp, err := order.Response()
	if err != nil {
		return model.OrderResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// Delete физически удаляет заказ
func (s *OrderService) Delete(ctx context.Context, rawID string) error {
	const op = "service.OrderService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("order_id", rawID))

	id, err := model.ParseID(rawID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.ActionDeleted, rawID)
	log.Info("order deleted")

	return nil
}

// checkUser транслирует отсутствие пользователя в ErrUserNotFound
func (s *OrderService) checkUser(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrUserNotFound
	}
	return nil
}

// publish отправляет событие об изменении; сбой публикации не
// откатывает уже применённую мутацию и не приводит к ошибке запроса
func (s *OrderService) publish(ctx context.Context, action, id string) {
	if s.publisher == nil {
		return
	}
	event := model.Event{
		Entity: model.EntityOrder,
		Action: action,
		ID:     id,
		At:     time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish event",
			slog.String("action", action),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}
