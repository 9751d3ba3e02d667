package service

import (
	"context"

	"delivery-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DishRepository определяет контракт для хранилища блюд
type DishRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Dish, error)
	GetAll(ctx context.Context) ([]model.Dish, error)
	Create(ctx context.Context, dish model.Dish) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Dish, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// OrderRepository определяет контракт для хранилища заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (model.Order, error)
	GetAll(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository определяет контракт проверки существования пользователя
// проверка ссылочной целостности не читает содержимое документа
type UserRepository interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// DishCache определяет контракт для in-memory кэша блюд
type DishCache interface {
	Set(dish model.Dish)
	Get(id string) (model.Dish, bool)
	Delete(id string)
	LoadAll(dishes []model.Dish)
}

// EventPublisher определяет контракт публикации событий об изменениях
type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}
