package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository даёт доступ к коллекции users
// сервису нужен только факт существования пользователя,
// содержимое документа не читается
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository создает новый экземпляр репозитория пользователей
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Exists проверяет наличие пользователя с данным идентификатором
// отсутствие документа — это не сбой, а штатный ответ false
func (r *UserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	const op = "repository.mongodb.user.Exists"

	// проекция только по _id: содержимое документа не нужно
	err := r.col.FindOne(
		ctx,
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("%s: failed to check user existence: %w", op, err)
	}
	return true, nil
}
