package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fsdevblog/shortlink/internal/models"
)

type ShortLinkRepo struct {
	coll *mongo.Collection
}

func NewShortLinkRepo(coll *mongo.Collection) *ShortLinkRepo {
	return &ShortLinkRepo{coll: coll}
}

func (r *ShortLinkRepo) Create(ctx context.Context, link *models.ShortLink) error {
	doc := *link
	if doc.Clicks == nil {
		doc.Clicks = []models.Click{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create record %s: %w", link.ShortURL, convertErrorType(err))
	}
	return nil
}

func (r *ShortLinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	return r.findOne(ctx, bson.M{"shortUrl": shortURL})
}

func (r *ShortLinkRepo) GetByAlias(ctx context.Context, alias string) (*models.ShortLink, error) {
	return r.findOne(ctx, bson.M{"alias": alias})
}

// RegisterClick одно обновление документа: $inc счетчика и $push клика.
func (r *ShortLinkRepo) RegisterClick(ctx context.Context, shortURL string, click models.Click) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"shortUrl": shortURL},
		bson.M{
			"$inc":  bson.M{"clickCount": 1},
			"$push": bson.M{"clicks": click},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register click for %s: %w", shortURL, convertErrorType(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("failed to register click for %s: %w", shortURL, convertErrorType(mongo.ErrNoDocuments))
	}
	return nil
}

func (r *ShortLinkRepo) DeleteByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"shortUrl": shortURL}).Decode(&link); err != nil {
		return nil, fmt.Errorf("failed to delete record %s: %w", shortURL, convertErrorType(err))
	}
	return &link, nil
}

func (r *ShortLinkRepo) findOne(ctx context.Context, filter bson.M) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.coll.FindOne(ctx, filter).Decode(&link); err != nil {
		return nil, fmt.Errorf("failed to find record %v: %w", filter, convertErrorType(err))
	}
	return &link, nil
}
