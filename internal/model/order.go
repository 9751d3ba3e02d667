package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order — документ заказа в коллекции orders
// order_status хранится как свободный текст ("pending", "in progress",
// "completed", "canceled", ...), словарь статусов открытый
type Order struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" validate:"required"`
	UserID      primitive.ObjectID   `bson:"user_id" validate:"required"`
	DishIDs     []primitive.ObjectID `bson:"dish_ids"`
	TotalPrice  float64              `bson:"total_price" validate:"gte=0"`
	OrderStatus string               `bson:"order_status" validate:"required"`
	OrderTime   time.Time            `bson:"order_time" validate:"required"`
}

// OrderCreate — входная модель создания заказа
// total_price считает вызывающая сторона, сервер её не пересчитывает
type OrderCreate struct {
	UserID      string   `json:"user_id" validate:"required"`
	DishIDs     []string `json:"dish_ids" validate:"required"`
	TotalPrice  float64  `json:"total_price" validate:"gte=0"`
	OrderStatus string   `json:"order_status" validate:"required"`
}

// OrderUpdate — входная модель частичного обновления заказа
// указатель на срез различает «dish_ids не переданы» и «передан пустой список»
// явно переданный пустой order_status отклоняется до записи в хранилище
type OrderUpdate struct {
	UserID      *string   `json:"user_id"`
	DishIDs     *[]string `json:"dish_ids"`
	TotalPrice  *float64  `json:"total_price" validate:"omitnil,gte=0"`
	OrderStatus *string   `json:"order_status" validate:"omitnil,required"`
}

// OrderResponse — внешняя форма заказа
type OrderResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DishIDs     []string  `json:"dish_ids"`
	TotalPrice  float64   `json:"total_price"`
	OrderStatus string    `json:"order_status"`
	OrderTime   time.Time `json:"order_time"`
}

// Validate проверяет корректность входных данных создания заказа
func (o *OrderCreate) Validate() error {
	return validate.Struct(o)
}

// Validate проверяет корректность переданных полей частичного обновления
func (u *OrderUpdate) Validate() error {
	return validate.Struct(u)
}

// SetFields собирает разреженный $set-документ из переданных полей
// ссылки (user_id, dish_ids) конвертируются в ObjectID,
// невалидный hex даёт ErrInvalidID
func (u *OrderUpdate) SetFields() (bson.M, error) {
	set := bson.M{}
	if u.UserID != nil {
		id, err := ParseID(*u.UserID)
		if err != nil {
			return nil, err
		}
		set["user_id"] = id
	}
	if u.DishIDs != nil {
		ids, err := ParseIDs(*u.DishIDs)
		if err != nil {
			return nil, err
		}
		set["dish_ids"] = ids
	}
	if u.TotalPrice != nil {
		set["total_price"] = *u.TotalPrice
	}
	if u.OrderStatus != nil {
		set["order_status"] = *u.OrderStatus
	}
	return set, nil
}

// Response сериализует сохранённый документ во внешнюю форму
// неполный документ даёт ErrShapeMismatch
func (o Order) Response() (OrderResponse, error) {
	if err := validate.Struct(o); err != nil {
		return OrderResponse{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	dishIDs := make([]string, 0, len(o.DishIDs))
	for _, id := range o.DishIDs {
		dishIDs = append(dishIDs, id.Hex())
	}
	return OrderResponse{
		ID:          o.ID.Hex(),
		UserID:      o.UserID.Hex(),
		DishIDs:     dishIDs,
		TotalPrice:  o.TotalPrice,
		OrderStatus: o.OrderStatus,
		OrderTime:   o.OrderTime,
	}, nil
}
