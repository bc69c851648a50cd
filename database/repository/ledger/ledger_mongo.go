package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"calendary/database"
	"calendary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingDoc is the stored shape of a booking. The derived end instant is
// denormalized so overlap queries can filter server-side.
type bookingDoc struct {
	models.Booking `bson:",inline"`
	End            time.Time `bson:"end"`
}

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	coll *mongo.Collection
}

// NewMongoLedgerRepo creates a LedgerRepository backed by the bookings
// collection.
func NewMongoLedgerRepo() LedgerRepository {
	coll := database.MongoClient.Database("calendary").Collection("bookings")
	repo := &MongoLedgerRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLedgerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "hostId", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("host_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "hostId", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("host_status_window_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoLedgerRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc bookingDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &doc.Booking, nil
}

// GetByHost retrieves all bookings for a host, ordered by start time.
func (r *MongoLedgerRepo) GetByHost(hostID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"hostId": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// GetConfirmedInRange retrieves confirmed bookings intersecting [from, to).
func (r *MongoLedgerRepo) GetConfirmedInRange(hostID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"hostId": hostID,
		"status": models.StatusConfirmed,
		"start":  bson.M{"$lt": to},
		"end":    bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query confirmed bookings for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// Append commits the booking inside a session, re-checking under the
// transaction that no confirmed booking occupies the padded window.
func (r *MongoLedgerRepo) Append(ctx context.Context, booking *models.Booking, bufferBefore, bufferAfter int) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	pad := time.Duration(bufferBefore+bufferAfter) * time.Minute
	paddedStart := booking.Start.Add(-pad)
	paddedEnd := booking.End().Add(pad)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"hostId": booking.HostID,
			"status": models.StatusConfirmed,
			"start":  bson.M{"$lt": paddedEnd},
			"end":    bson.M{"$gt": paddedStart},
		}
		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}
		doc := bookingDoc{Booking: *booking, End: booking.End()}
		if _, err := r.coll.InsertOne(sc, doc); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrConflict {
			return ErrConflict
		}
		return fmt.Errorf("booking append transaction failed: %w", err)
	}
	return nil
}

// MarkCancelled transitions a confirmed booking to cancelled.
func (r *MongoLedgerRepo) MarkCancelled(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.StatusConfirmed},
		bson.M{"$set": bson.M{"status": models.StatusCancelled}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing booking from one already cancelled.
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to look up booking %s: %w", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]models.Booking, error) {
	var bookings []models.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, doc.Booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booking cursor error: %w", err)
	}
	return bookings, nil
}
