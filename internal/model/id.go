package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID валидирует и декодирует внешний строковый идентификатор
// в нативный ObjectID хранилища
// пустая строка, неверная длина или не-hex символы дают ErrInvalidID
// функция не имеет побочных эффектов и вызывается ДО любого обращения к хранилищу
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ParseIDs декодирует срез строковых идентификаторов (например, dish_ids заказа)
// при первой же невалидной строке возвращает ErrInvalidID
func ParseIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := ParseID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
