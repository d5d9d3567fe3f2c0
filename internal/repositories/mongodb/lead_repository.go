package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
)

// Compile-time check to ensure LeadRepository implements the interface
var _ repositories.LeadRepository = (*LeadRepository)(nil)

// LeadRepository handles MongoDB operations for the lead ledger
type LeadRepository struct {
	collection *mongo.Collection
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		collection: db.Collection("leads"),
	}
}

// EnsureIndexes creates the indexes the ledger queries rely on.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "referencia", Value: 1}}},
		{Keys: bson.D{{Key: "dataCadastro", Value: 1}}},
	})
	return err
}

// Create inserts a new ledger row
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	prepare(lead, time.Now())
	_, err := r.collection.InsertOne(ctx, lead)
	return err
}

// CreateMany inserts a batch of rows sharing the same timestamp
func (r *LeadRepository) CreateMany(ctx context.Context, leads []*models.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(leads))
	for i, lead := range leads {
		prepare(lead, now)
		docs[i] = lead
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func prepare(lead *models.Lead, now time.Time) {
	lead.ID = primitive.NewObjectID()
	if lead.DataCadastro.IsZero() {
		lead.DataCadastro = now
	}
}

// FindAll retrieves the whole ledger in registration order
func (r *LeadRepository) FindAll(ctx context.Context) ([]*models.Lead, error) {
	return r.find(ctx, bson.M{})
}

// FindByReference retrieves the rows carrying the given reference
func (r *LeadRepository) FindByReference(ctx context.Context, reference string) ([]*models.Lead, error) {
	return r.find(ctx, bson.M{"referencia": reference})
}

func (r *LeadRepository) find(ctx context.Context, filter bson.M) ([]*models.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dataCadastro", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []*models.Lead
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	return leads, nil
}

// Count returns the number of ledger rows
func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByReference returns the number of rows carrying the given reference
func (r *LeadRepository) CountByReference(ctx context.Context, reference string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"referencia": reference})
}
