// Package mocks содержит testify-моки интерфейсов сервисного слоя
package mocks

import (
	"context"

	"delivery-service/internal/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DishRepository struct {
	mock.Mock
}

func (m *DishRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Dish, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Dish), args.Error(1)
}

func (m *DishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Dish), args.Error(1)
}

func (m *DishRepository) Create(ctx context.Context, dish model.Dish) (primitive.ObjectID, error) {
	args := m.Called(ctx, dish)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *DishRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Dish, error) {
	args := m.Called(ctx, id, set)
	return args.Get(0).(model.Dish), args.Error(1)
}

func (m *DishRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *OrderRepository) Create(ctx context.Context, order model.Order) (primitive.ObjectID, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Order, error) {
	args := m.Called(ctx, id, set)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
