package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	rules "mesaYaBooking/internal/modules/rules/domain"
)

type rulesDoc struct {
	RestaurantID      string  `bson:"restaurant_id"`
	OpeningTime       string  `bson:"opening_time"`
	ClosingTime       string  `bson:"closing_time"`
	GracePeriod       int     `bson:"grace_period"`
	PenaltyFee        float64 `bson:"penalty_fee"`
	MaxDuration       float64 `bson:"max_duration"`
	CancellationHours float64 `bson:"cancellation_hours"`
	AutoCancelMinutes int     `bson:"auto_cancel_minutes"`
}

func toRulesDoc(policy rules.ReservationRules) rulesDoc {
	return rulesDoc{
		RestaurantID:      policy.RestaurantID,
		OpeningTime:       policy.OpeningTime,
		ClosingTime:       policy.ClosingTime,
		GracePeriod:       policy.GracePeriod,
		PenaltyFee:        policy.PenaltyFee,
		MaxDuration:       policy.MaxDuration,
		CancellationHours: policy.CancellationHours,
		AutoCancelMinutes: policy.AutoCancelMinutes,
	}
}

func (d rulesDoc) toDomain() rules.ReservationRules {
	return rules.ReservationRules{
		RestaurantID:      d.RestaurantID,
		OpeningTime:       d.OpeningTime,
		ClosingTime:       d.ClosingTime,
		GracePeriod:       d.GracePeriod,
		PenaltyFee:        d.PenaltyFee,
		MaxDuration:       d.MaxDuration,
		CancellationHours: d.CancellationHours,
		AutoCancelMinutes: d.AutoCancelMinutes,
	}
}

type RulesRepository struct {
	collection *mongo.Collection
}

func NewRulesRepository(storage *Storage) *RulesRepository {
	return &RulesRepository{
		collection: storage.Database().Collection("reservation_rules"),
	}
}

func (r *RulesRepository) Get(ctx context.Context, restaurantID string) (rules.ReservationRules, error) {
	var doc rulesDoc
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return rules.ReservationRules{}, rules.ErrRulesNotFound
		}
		return rules.ReservationRules{}, fmt.Errorf("failed to get reservation rules: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RulesRepository) Save(ctx context.Context, policy rules.ReservationRules) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"restaurant_id": policy.RestaurantID}, toRulesDoc(policy), opts)
	if err != nil {
		return fmt.Errorf("failed to save reservation rules: %w", err)
	}
	return nil
}

// Rules satisfies the provider the booking flow reads from: restaurants that
// never saved their own policy get the platform defaults.
func (r *RulesRepository) Rules(ctx context.Context, restaurantID string) (rules.ReservationRules, error) {
	policy, err := r.Get(ctx, restaurantID)
	if err != nil {
		if err == rules.ErrRulesNotFound {
			return rules.Default(restaurantID), nil
		}
		return rules.ReservationRules{}, err
	}
	return policy, nil
}
