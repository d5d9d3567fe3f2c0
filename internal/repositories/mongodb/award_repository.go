package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
)

var _ repositories.AwardRepository = (*AwardRepository)(nil)

// AwardRepository handles MongoDB operations for awarded prizes
type AwardRepository struct {
	collection *mongo.Collection
}

// NewAwardRepository creates a new AwardRepository
func NewAwardRepository(db *mongo.Database) *AwardRepository {
	return &AwardRepository{
		collection: db.Collection("awards"),
	}
}

// EnsureIndexes makes voucher ids unique.
func (r *AwardRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "voucherId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new award
func (r *AwardRepository) Create(ctx context.Context, award *models.Award) error {
	award.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, award)
	return err
}

// FindByVoucherID finds the award behind a voucher
func (r *AwardRepository) FindByVoucherID(ctx context.Context, voucherID string) (*models.Award, error) {
	var award models.Award
	err := r.collection.FindOne(ctx, bson.M{"voucherId": voucherID}).Decode(&award)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &award, nil
}

// Count returns the number of awards handed out
func (r *AwardRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
