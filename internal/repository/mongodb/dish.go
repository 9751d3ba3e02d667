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

// DishRepository инкапсулирует логику работы с коллекцией dishes
type DishRepository struct {
	col *mongo.Collection
}

// NewDishRepository создает новый экземпляр репозитория блюд
func NewDishRepository(db *mongo.Database) *DishRepository {
	return &DishRepository{col: db.Collection("dishes")}
}

// GetByID извлекает одно блюдо по его идентификатору
func (r *DishRepository) GetByID(ctx context.Context, id primitive.ObjectID) (model.Dish, error) {
	const op = "repository.mongodb.dish.GetByID"

	var dish model.Dish
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&dish)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Dish{}, fmt.Errorf("%s: %w", op, model.ErrDishNotFound)
		}
		return model.Dish{}, fmt.Errorf("%s: failed to find dish: %w", op, err)
	}
	return dish, nil
}

// GetAll извлекает блюда в нативном порядке хранилища, не более maxListed штук
// мягко удалённые документы НЕ отфильтровываются — см. DESIGN.md
func (r *DishRepository) GetAll(ctx context.Context) ([]model.Dish, error) {
	const op = "repository.mongodb.dish.GetAll"

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(maxListed))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query dishes: %w", op, err)
	}
	defer cur.Close(ctx)

	dishes := []model.Dish{}
	if err := cur.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("%s: failed to decode dishes: %w", op, err)
	}
	return dishes, nil
}

// Create вставляет документ блюда и возвращает присвоенный хранилищем идентификатор
func (r *DishRepository) Create(ctx context.Context, dish model.Dish) (primitive.ObjectID, error) {
	const op = "repository.mongodb.dish.Create"

	res, err := r.col.InsertOne(ctx, dish)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: failed to insert dish: %w", op, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}
	return id, nil
}

// Update применяет разреженный $set одним атомарным find-and-update
// и возвращает документ ПОСЛЕ мутации
// пустой set вырождается в обычное чтение: Mongo не принимает пустой $set,
// а семантика «ноль полей — документ без изменений» должна сохраниться
func (r *DishRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (model.Dish, error) {
	const op = "repository.mongodb.dish.Update"

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var dish model.Dish
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&dish)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Dish{}, fmt.Errorf("%s: %w", op, model.ErrDishNotFound)
		}
		return model.Dish{}, fmt.Errorf("%s: failed to update dish: %w", op, err)
	}
	return dish, nil
}

// SoftDelete помечает блюдо удалённым, документ физически остаётся в коллекции
// операция идемпотентна: повторный вызов для уже удалённого блюда тоже успешен
func (r *DishRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	const op = "repository.mongodb.dish.SoftDelete"

	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deleted": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%s: %w", op, model.ErrDishNotFound)
		}
		return fmt.Errorf("%s: failed to soft-delete dish: %w", op, err)
	}
	return nil
}
