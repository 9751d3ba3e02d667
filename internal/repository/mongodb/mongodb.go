package mongodb

import (
	"context"
	"fmt"

	"delivery-service/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// maxListed — максимальное число документов, возвращаемых списочными запросами
const maxListed = 1000

// New создает клиент MongoDB и возвращает хэндл базы данных
// соединение долгоживущее и передаётся репозиториям явно, а не через глобальное состояние
func New(ctx context.Context, cfg config.Mongo) (*mongo.Database, error) {
	const op = "repository.mongodb.New"

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	// проверяем, что соединение установлено
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return client.Database(cfg.Database), nil
}
