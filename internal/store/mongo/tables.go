package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

type tableTypeDoc struct {
	ID           string    `bson:"_id"`
	RestaurantID string    `bson:"restaurant_id"`
	SeatCount    int       `bson:"seat_count"`
	Quantity     int       `bson:"quantity"`
	Description  string    `bson:"description,omitempty"`
	ImageURL     string    `bson:"image_url,omitempty"`
	WindowSide   bool      `bson:"window_side"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toTableTypeDoc(t inventory.TableType) tableTypeDoc {
	return tableTypeDoc{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		SeatCount:    t.SeatCount,
		Quantity:     t.Quantity,
		Description:  t.Description,
		ImageURL:     t.ImageURL,
		WindowSide:   t.WindowSide,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d tableTypeDoc) toDomain() inventory.TableType {
	return inventory.TableType{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		SeatCount:    d.SeatCount,
		Quantity:     d.Quantity,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		WindowSide:   d.WindowSide,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type TableTypeRepository struct {
	collection *mongo.Collection
}

func NewTableTypeRepository(storage *Storage) *TableTypeRepository {
	return &TableTypeRepository{
		collection: storage.Database().Collection("table_types"),
	}
}

func (r *TableTypeRepository) Insert(ctx context.Context, tableType inventory.TableType) error {
	if _, err := r.collection.InsertOne(ctx, toTableTypeDoc(tableType)); err != nil {
		return fmt.Errorf("failed to insert table type: %w", err)
	}
	return nil
}

func (r *TableTypeRepository) Get(ctx context.Context, id string) (inventory.TableType, error) {
	var doc tableTypeDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return inventory.TableType{}, inventory.ErrTableTypeNotFound
		}
		return inventory.TableType{}, fmt.Errorf("failed to get table type: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TableTypeRepository) Update(ctx context.Context, tableType inventory.TableType) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tableType.ID}, toTableTypeDoc(tableType))
	if err != nil {
		return fmt.Errorf("failed to update table type: %w", err)
	}
	if result.MatchedCount == 0 {
		return inventory.ErrTableTypeNotFound
	}
	return nil
}

func (r *TableTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete table type: %w", err)
	}
	if result.DeletedCount == 0 {
		return inventory.ErrTableTypeNotFound
	}
	return nil
}

func (r *TableTypeRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]inventory.TableType, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "seat_count", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list table types: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tableTypeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode table types: %w", err)
	}
	out := make([]inventory.TableType, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

// TableType and TableTypes satisfy the provider the booking flow reads from.

func (r *TableTypeRepository) TableType(ctx context.Context, id string) (inventory.TableType, error) {
	return r.Get(ctx, id)
}

func (r *TableTypeRepository) TableTypes(ctx context.Context, restaurantID string) ([]inventory.TableType, error) {
	return r.ListByRestaurant(ctx, restaurantID)
}
