package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"delivery-service/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DishService инкапсулирует бизнес-логику работы с блюдами
type DishService struct {
	repo      DishRepository
	users     UserRepository
	cache     DishCache
	publisher EventPublisher
	log       *slog.Logger
}

// NewDishService создаёт новый экземпляр сервиса блюд
// он принимает интерфейсы, а не конкретные типы, для гибкости и тестируемости
func NewDishService(repo DishRepository, users UserRepository, cache DishCache, publisher EventPublisher, log *slog.Logger) *DishService {
	return &DishService{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// GetByID получает блюдо по его идентификатору
// сначала ищет в кэше, и только если там нет — обращается к хранилищу
func (s *DishService) GetByID(ctx context.Context, rawID string) (model.DishResponse, error) {
	const op = "service.DishService.GetByID"
	log := s.log.With(slog.String("op", op), slog.String("dish_id", rawID))

	// идентификатор валидируется до любого обращения к хранилищу
	id, err := model.ParseID(rawID)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if dish, found := s.cache.Get(rawID); found {
		log.Debug("dish found in cache")
		resp, err := dish.Response()
		if err != nil {
			return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		return resp, nil
	}

	dish, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(dish)
	log.Debug("dish found in repository and now cached")

	resp, err := dish.Response()
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// GetAll получает все блюда в нативном порядке хранилища
func (s *DishService) GetAll(ctx context.Context) ([]model.DishResponse, error) {
	const op = "service.DishService.GetAll"

	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses := make([]model.DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		resp, err := dish.Response()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Create создаёт новое блюдо
// ссылка created_by проверяется ДО вставки: блюдо несуществующего
// пользователя в хранилище не попадает
func (s *DishService) Create(ctx context.Context, in model.DishCreate) (model.DishResponse, error) {
	const op = "service.DishService.Create"
	log := s.log.With(slog.String("op", op), slog.String("name", in.Name))

	if err := in.Validate(); err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	createdBy, err := model.ParseID(in.CreatedBy)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkUser(ctx, createdBy); err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	dish := model.Dish{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedBy:   createdBy,
		Deleted:     false,
	}

	id, err := s.repo.Create(ctx, dish)
	if err != nil {
		log.Error("failed to insert dish", slog.String("error", err.Error()))
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	// перечитываем документ по выданному идентификатору:
	// вставка не обязана возвращать документ целиком
	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(created)
	s.publish(ctx, model.ActionCreated, id.Hex())
	log.Info("dish created", slog.String("dish_id", id.Hex()))

	resp, err := created.Response()
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// Update применяет частичное обновление блюда
// если обновление меняет created_by, новая ссылка проверяется до мутации
func (s *DishService) Update(ctx context.Context, rawID string, in model.DishUpdate) (model.DishResponse, error) {
	const op = "service.DishService.Update"
	log := s.log.With(slog.String("op", op), slog.String("dish_id", rawID))

	id, err := model.ParseID(rawID)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := in.Validate(); err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.CreatedBy != nil {
		createdBy, err := model.ParseID(*in.CreatedBy)
		if err != nil {
			return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.checkUser(ctx, createdBy); err != nil {
			return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	set, err := in.SetFields()
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	dish, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(dish)
	s.publish(ctx, model.ActionUpdated, rawID)
	log.Info("dish updated", slog.Int("fields", len(set)))

	resp, err := dish.Response()
	if err != nil {
		return model.DishResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// Delete мягко удаляет блюдо: флаг deleted взводится,
// документ физически остаётся в коллекции
func (s *DishService) Delete(ctx context.Context, rawID string) error {
	const op = "service.DishService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("dish_id", rawID))

	id, err := model.ParseID(rawID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(rawID)
	s.publish(ctx, model.ActionDeleted, rawID)
	log.Info("dish soft-deleted")

	return nil
}

// RestoreCache восстанавливает состояние кэша из хранилища при старте
func (s *DishService) RestoreCache(ctx context.Context) error {
	const op = "service.DishService.RestoreCache"
	log := s.log.With(slog.String("op", op))

	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get all dishes from repository", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.LoadAll(dishes)

	log.Info("cache restored successfully", slog.Int("dishes_count", len(dishes)))
	return nil
}

// checkUser транслирует отсутствие пользователя в ErrUserNotFound
// гонка «пользователь удалён между проверкой и записью» допускается:
// транзакций между проверкой и мутацией нет
func (s *DishService) checkUser(ctx context.Context, id primitive.ObjectID) error {
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
func (s *DishService) publish(ctx context.Context, action, id string) {
	if s.publisher == nil {
		return
	}
	event := model.Event{
		Entity: model.EntityDish,
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
