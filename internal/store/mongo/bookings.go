package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mesaYaBooking/internal/modules/bookings/application/port"
	bookings "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

type bookingDoc struct {
	ID                  string     `bson:"_id"`
	RestaurantID        string     `bson:"restaurant_id"`
	CustomerID          string     `bson:"customer_id"`
	TableTypeID         string     `bson:"table_type_id"`
	SeatCount           int        `bson:"seat_count"`
	Date                string     `bson:"date"`
	Time                string     `bson:"time"`
	DurationHours       float64    `bson:"duration_hours"`
	PartySize           int        `bson:"party_size"`
	Status              string     `bson:"status"`
	Price               float64    `bson:"price"`
	PenaltyFee          float64    `bson:"penalty_fee"`
	SpecialInstructions string     `bson:"special_instructions,omitempty"`
	QRCode              string     `bson:"qr_code,omitempty"`
	CancelReason        string     `bson:"cancel_reason,omitempty"`
	CheckedInAt         *time.Time `bson:"checked_in_at,omitempty"`
	StartsAt            time.Time  `bson:"starts_at"`
	CreatedAt           time.Time  `bson:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at"`
}

func toBookingDoc(b bookings.Booking) bookingDoc {
	startsAt, _ := b.StartsAt()
	return bookingDoc{
		ID:                  b.ID,
		RestaurantID:        b.RestaurantID,
		CustomerID:          b.CustomerID,
		TableTypeID:         b.TableTypeID,
		SeatCount:           b.SeatCount,
		Date:                b.Date,
		Time:                b.Time,
		DurationHours:       b.DurationHours,
		PartySize:           b.PartySize,
		Status:              string(b.Status),
		Price:               b.Price,
		PenaltyFee:          b.PenaltyFee,
		SpecialInstructions: b.SpecialInstructions,
		QRCode:              b.QRCode,
		CancelReason:        string(b.CancelReason),
		CheckedInAt:         b.CheckedInAt,
		StartsAt:            startsAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func (d bookingDoc) toDomain() bookings.Booking {
	return bookings.Booking{
		ID:                  d.ID,
		RestaurantID:        d.RestaurantID,
		CustomerID:          d.CustomerID,
		TableTypeID:         d.TableTypeID,
		SeatCount:           d.SeatCount,
		Date:                d.Date,
		Time:                d.Time,
		DurationHours:       d.DurationHours,
		PartySize:           d.PartySize,
		Status:              bookings.BookingStatus(d.Status),
		Price:               d.Price,
		PenaltyFee:          d.PenaltyFee,
		SpecialInstructions: d.SpecialInstructions,
		QRCode:              d.QRCode,
		CancelReason:        bookings.CancelReason(d.CancelReason),
		CheckedInAt:         d.CheckedInAt,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

type BookingRepository struct {
	storage    *Storage
	collection *mongo.Collection
}

func NewBookingRepository(storage *Storage) *BookingRepository {
	return &BookingRepository{
		storage:    storage,
		collection: storage.Database().Collection("bookings"),
	}
}

func activeSlotFilter(slot bookings.SlotKey) bson.M {
	return bson.M{
		"restaurant_id": slot.RestaurantID,
		"table_type_id": slot.TableTypeID,
		"date":          slot.Date,
		"time":          slot.Time,
		"status":        string(bookings.BookingStatusUpcoming),
	}
}

// InsertIfAvailable re-reads the table type's quantity, counts the slot's
// active bookings and inserts inside one session, so concurrent requests and
// inventory shrinks cannot oversell the same slot.
func (r *BookingRepository) InsertIfAvailable(ctx context.Context, booking bookings.Booking) error {
	session, err := r.storage.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var tableType struct {
			Quantity int `bson:"quantity"`
		}
		err := r.storage.Database().Collection("table_types").
			FindOne(sessCtx, bson.M{"_id": booking.TableTypeID}).Decode(&tableType)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, inventory.ErrTableTypeNotFound
			}
			return nil, fmt.Errorf("failed to read table type: %w", err)
		}
		count, err := r.collection.CountDocuments(sessCtx, activeSlotFilter(booking.Slot()))
		if err != nil {
			return nil, fmt.Errorf("failed to count slot bookings: %w", err)
		}
		if count >= int64(tableType.Quantity) {
			return nil, bookings.ErrSlotFull
		}
		if _, err := r.collection.InsertOne(sessCtx, toBookingDoc(booking)); err != nil {
			return nil, fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *BookingRepository) Get(ctx context.Context, id string) (bookings.Booking, error) {
	var doc bookingDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return bookings.Booking{}, bookings.ErrBookingNotFound
		}
		return bookings.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) Update(ctx context.Context, booking bookings.Booking) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, toBookingDoc(booking))
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookings.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, restaurantID string, filter port.BookingFilter) ([]bookings.Booking, error) {
	query := bson.M{"restaurant_id": restaurantID}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *BookingRepository) ListActive(ctx context.Context) ([]bookings.Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": string(bookings.BookingStatusUpcoming)})
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (r *BookingRepository) CountActive(ctx context.Context, slot bookings.SlotKey) (int, error) {
	count, err := r.collection.CountDocuments(ctx, activeSlotFilter(slot))
	if err != nil {
		return 0, fmt.Errorf("failed to count slot bookings: %w", err)
	}
	return int(count), nil
}

// PeakSlotUsage returns the highest active-booking count any single slot holds
// for the table type.
func (r *BookingRepository) PeakSlotUsage(ctx context.Context, restaurantID, tableTypeID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"restaurant_id": restaurantID,
			"table_type_id": tableTypeID,
			"status":        string(bookings.BookingStatusUpcoming),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"date": "$date", "time": "$time"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":  nil,
			"peak": bson.M{"$max": "$count"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate slot usage: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Peak int `bson:"peak"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode slot usage: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Peak, nil
}

func (r *BookingRepository) HasUpcoming(ctx context.Context, restaurantID, tableTypeID string, after time.Time) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"restaurant_id": restaurantID,
		"table_type_id": tableTypeID,
		"status":        string(bookings.BookingStatusUpcoming),
		"starts_at":     bson.M{"$gt": after},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}
	return count > 0, nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]bookings.Booking, error) {
	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	out := make([]bookings.Booking, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
