package mongodb

import (
	"context"
	"errors"
	"fmt"

	"delivery-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository инкапсулирует логику работы с коллекцией orders
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository создает новый экземпляр репозитория заказов
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

// GetByID извлекает один заказ по его идентификатору
func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Order, error) {
	const op = "repository.mongodb.order.GetByID"

	var order model.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Order{}, fmt.Errorf("%s: %w", op, model.ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("%s: failed to find order: %w", op, err)
	}
	return order, nil
}

// GetAll извлекает заказы в нативном порядке хранилища, не более maxListed штук
func (r *OrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	const op = "repository.mongodb.order.GetAll"

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(maxListed))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query orders: %w", op, err)
	}
	defer cur.Close(ctx)

	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%s: failed to decode orders: %w", op, err)
	}
	return orders, nil
}

// Create вставляет документ заказа и возвращает присвоенный хранилищем идентификатор
func (r *OrderRepository) Create(ctx context.Context, order model.Order) (primitive.ObjectID, error) {
	const op = "repository.mongodb.order.Create"

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: failed to insert order: %w", op, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}
	return id, nil
}

// Update применяет разреженный $set одним атомарным find-and-update
// и возвращает документ ПОСЛЕ мутации
// пустой set вырождается в обычное чтение (см. DishRepository.Update)
func (r *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Order, error) {
	const op = "repository.mongodb.order.Update"

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var order model.Order
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Order{}, fmt.Errorf("%s: %w", op, model.ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("%s: failed to update order: %w", op, err)
	}
	return order, nil
}

// Delete физически удаляет заказ из коллекции
// в отличие от блюд, заказы не архивируются
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "repository.mongodb.order.Delete"

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: failed to delete order: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, model.ErrOrderNotFound)
	}
	return nil
}
