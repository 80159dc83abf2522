package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aroolinks/agencydesk/internal/core/domain"
)

const collectionHosting = "hosting_services"

type HostingRepository struct {
	col *mongo.Collection
}

func NewHostingRepository(db *mongo.Database) *HostingRepository {
	return &HostingRepository{col: db.Collection(collectionHosting)}
}

func (r *HostingRepository) List(ctx context.Context) ([]*domain.HostingService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "endDate", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list hosting services: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.HostingService
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode hosting services: %w", err)
	}
	return items, nil
}

func (r *HostingRepository) FindByID(ctx context.Context, id string) (*domain.HostingService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.HostingService
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHostingNotFound
		}
		return nil, fmt.Errorf("find hosting service: %w", err)
	}
	return &h, nil
}

func (r *HostingRepository) Create(ctx context.Context, h *domain.HostingService) (*domain.HostingService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *h
	created.ID = primitive.NewObjectID().Hex()

	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert hosting service: %w", err)
	}
	return &created, nil
}

func (r *HostingRepository) Replace(ctx context.Context, h *domain.HostingService) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		return fmt.Errorf("replace hosting service: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHostingNotFound
	}
	return nil
}

func (r *HostingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete hosting service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHostingNotFound
	}
	return nil
}

// EnsureIndexes creates the end-date index the renewal sweep scans on.
func (r *HostingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "endDate", Value: 1}},
	})
	return err
}
