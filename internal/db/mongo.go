package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase используется, если в строке подключения не указана база.
const DefaultMongoDatabase = "url-shortener"

// ShortLinksCollection коллекция с короткими ссылками.
const ShortLinksCollection = "urls"

// MongoConnection клиент MongoDB и выбранная база данных.
type MongoConnection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoConnection подключается к MongoDB и создает индексы коллекции ссылок.
//
// Параметры:
//   - ctx: контекст выполнения
//   - uri: строка подключения, имя базы берется из пути (mongodb://host:27017/<db>)
//
// Возвращает:
//   - *MongoConnection: подключение
//   - error: ошибка подключения или создания индексов
func NewMongoConnection(ctx context.Context, uri string) (*MongoConnection, error) {
	cs, csErr := connstring.ParseAndValidate(uri)
	if csErr != nil {
		return nil, fmt.Errorf("failed to parse mongo uri: %w", csErr)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	conn := &MongoConnection{
		Client:   client,
		Database: client.Database(dbName),
	}
	if indexErr := ensureMongoIndexes(ctx, conn.Database.Collection(ShortLinksCollection)); indexErr != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", indexErr)
	}
	return conn, nil
}

func (c *MongoConnection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary()) //nolint:wrapcheck
}

func (c *MongoConnection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx) //nolint:wrapcheck
}

// ensureMongoIndexes уникальный индекс по shortUrl и уникальный разреженный по alias:
// документы без alias друг с другом не конфликтуют.
func ensureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shortUrl", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "alias", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err //nolint:wrapcheck
}
