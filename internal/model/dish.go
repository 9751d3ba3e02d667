package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dish — документ блюда в том виде, в котором он лежит в коллекции dishes
// теги validate описывают обязательные поля схемы: по ним же проверяется,
// что прочитанный из хранилища документ пригоден для сериализации в ответ
type Dish struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" validate:"required"`
	Name        string             `bson:"name" validate:"required"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price" validate:"gte=0"`
	CreatedBy   primitive.ObjectID `bson:"created_by" validate:"required"`
	// признак мягкого удаления: документ никогда не удаляется физически
	Deleted bool `bson:"deleted"`
}

// DishCreate — входная модель создания блюда
type DishCreate struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	CreatedBy   string  `json:"created_by" validate:"required"`
}

// DishUpdate — входная модель частичного обновления блюда
// поля-указатели различают «поле не передано» (nil) и «поле передано» (не nil),
// в том числе с нулевым значением
// omitnil (а не omitempty) проверяет переданное значение даже когда оно
// нулевое: явно переданное пустое name отклоняется до записи в хранилище
type DishUpdate struct {
	Name        *string  `json:"name" validate:"omitnil,required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	CreatedBy   *string  `json:"created_by"`
}

// DishResponse — внешняя форма блюда
// поля deleted и created_by наружу не отдаются
type DishResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

var validate = validator.New()

// Validate проверяет корректность входных данных создания блюда
func (d *DishCreate) Validate() error {
	return validate.Struct(d)
}

// Validate проверяет корректность переданных полей частичного обновления
func (u *DishUpdate) Validate() error {
	return validate.Struct(u)
}

// SetFields собирает разреженный $set-документ из переданных полей
// отсутствующие поля (nil) не попадают в обновление; переданные — попадают,
// даже если значение пустое или нулевое
// created_by конвертируется в ObjectID, невалидный hex даёт ErrInvalidID
func (u *DishUpdate) SetFields() (bson.M, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.CreatedBy != nil {
		id, err := ParseID(*u.CreatedBy)
		if err != nil {
			return nil, err
		}
		set["created_by"] = id
	}
	return set, nil
}

// Response сериализует сохранённый документ во внешнюю форму
// документ с отсутствующими обязательными полями (дрейф схемы)
// даёт ErrShapeMismatch и никогда не «чинится» значениями по умолчанию
func (d Dish) Response() (DishResponse, error) {
	if err := validate.Struct(d); err != nil {
		return DishResponse{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return DishResponse{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}, nil
}
