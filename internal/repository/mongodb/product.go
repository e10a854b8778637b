package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements domain.ProductRepository using MongoDB
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	tenantID, err := guardInsert(ctx, product.TenantID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	product.TenantID = tenantID
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Get retrieves a product visible to the current tenant
func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := r.coll.FindOne(ctx, filter).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// List returns products, optionally restricted to a category
func (r *ProductRepository) List(ctx context.Context, category string, activeOnly bool) ([]domain.Product, error) {
	base := bson.M{}
	if category != "" {
		base["category"] = category
	}
	if activeOnly {
		base["isActive"] = true
	}

	filter, err := scopedFilter(ctx, base)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// ListOutOfStock returns active products with zero stock
func (r *ProductRepository) ListOutOfStock(ctx context.Context) ([]domain.Product, error) {
	filter, err := scopedFilter(ctx, bson.M{"isActive": true, "stock": bson.M{"$lte": 0}})
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list out-of-stock products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Update applies a partial update to a product
func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, update *domain.ProductUpdate) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}

	doc := bson.M{"$set": set}
	if err := guardUpdate(doc); err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter, err := scopedFilter(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
