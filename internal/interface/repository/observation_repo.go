package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amenegatti1/flight-price-monitor/internal/domain/entity"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
)

// MongoObservationRepository implements ObservationRepository on an
// append-only collection; documents are never updated or deleted
type MongoObservationRepository struct {
	collection *mongo.Collection
}

// NewMongoObservationRepository creates a new observation repository
func NewMongoObservationRepository(db *mongo.Database) repository.ObservationRepository {
	collection := db.Collection("flight_observations")

	// Index for MostRecentPrice lookups
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightNumber", Value: 1},
			{Key: "departureDate", Value: 1},
			{Key: "cabin", Value: 1},
			{Key: "checkedAt", Value: -1},
		},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoObservationRepository{
		collection: collection,
	}
}

// Append stores one immutable observation row
func (r *MongoObservationRepository) Append(ctx context.Context, obs *entity.FlightObservation) error {
	if obs.ID == "" {
		obs.ID = primitive.NewObjectID().Hex()
	}
	if obs.CheckedAt.IsZero() {
		obs.CheckedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, obs)
	return err
}

// MostRecentPrice returns the latest prior price for the history key, or
// nil when the flight has never been observed. checkedAt ties resolve by
// _id, i.e. insertion order.
func (r *MongoObservationRepository) MostRecentPrice(ctx context.Context, flightNumber, departureDate string, cabin entity.Cabin) (*decimal.Decimal, error) {
	filter := bson.M{
		"flightNumber":  flightNumber,
		"departureDate": departureDate,
		"cabin":         string(cabin),
	}
	opts := options.FindOne().SetSort(bson.D{
		{Key: "checkedAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	var obs entity.FlightObservation
	err := r.collection.FindOne(ctx, filter, opts).Decode(&obs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &entity.LookupError{Key: flightNumber + ":" + departureDate + ":" + string(cabin), Err: err}
	}

	price, err := decimal.NewFromString(obs.Price)
	if err != nil {
		return nil, &entity.LookupError{Key: flightNumber + ":" + departureDate + ":" + string(cabin), Err: err}
	}

	return &price, nil
}
