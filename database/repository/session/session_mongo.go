package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorship/database"
	"mentorship/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	sessionColl *mongo.Collection
	lockColl    *mongo.Collection
}

// NewMongoSessionRepo constructs the repository on the "sessions" and
// "session_locks" collections and ensures indexes.
func NewMongoSessionRepo() (SessionRepository, error) {
	db := database.DB()
	repo := &MongoSessionRepo{
		sessionColl: db.Collection("sessions"),
		lockColl:    db.Collection("session_locks"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Partial unique index: at most one confirmed session may start at a
	// given mentor/date/time. Backs up the lock for the aligned case.
	activeStart := mongo.IndexModel{
		Keys: bson.D{
			{Key: "mentorId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "startTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.SessionStatusConfirmed}),
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "startsAt", Value: 1}}},
		{Keys: bson.D{{Key: "mentorId", Value: 1}, {Key: "startsAt", Value: 1}}},
		activeStart,
	}
	if _, err := r.sessionColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}

func lockKey(mentorID, date string) string {
	return mentorID + "|" + date
}

// ReserveSlot runs in a transaction that first writes the mentor/date lock
// document. Two concurrent reservations for the same mentor and date both
// write that document, so one of them hits a write conflict and is retried by
// WithTransaction, after which it sees the other's session.
func (r *MongoSessionRepo) ReserveSlot(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.sessionColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	owner := uuid.NewString()
	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		lockFilter := bson.M{"_id": lockKey(session.MentorID, session.Date)}
		lockUpdate := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"owner": owner, "lockedAt": time.Now()},
		}
		if _, err := r.lockColl.UpdateOne(sc, lockFilter, lockUpdate, options.Update().SetUpsert(true)); err != nil {
			return nil, fmt.Errorf("acquire booking lock failed: %w", err)
		}

		overlapFilter := bson.M{
			"mentorId":  session.MentorID,
			"date":      session.Date,
			"status":    bson.M{"$ne": models.SessionStatusCancelled},
			"startTime": bson.M{"$lt": session.EndTime},
			"endTime":   bson.M{"$gt": session.StartTime},
		}
		n, err := r.sessionColl.CountDocuments(sc, overlapFilter)
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return nil, ErrSlotTaken
		}

		if _, err := r.sessionColl.InsertOne(sc, session); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrSlotTaken
			}
			return nil, fmt.Errorf("insert session failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("reserve slot for mentor %s on %s: %w", session.MentorID, session.Date, err)
	}
	return nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Session
	if err := r.sessionColl.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error fetching session with id %s: %w", id, err)
	}
	return &s, nil
}

// GetBookedSlots returns the active sessions of a mentor on date as booked slots.
func (r *MongoSessionRepo) GetBookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"mentorId": mentorID,
		"date":     date,
		"status":   bson.M{"$ne": models.SessionStatusCancelled},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "startTime", Value: 1}}).
		SetProjection(bson.M{"startTime": 1, "endTime": 1})

	cursor, err := r.sessionColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := make([]models.TimeSlot, 0)
	for cursor.Next(ctx) {
		var s models.Session
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding session: %w", err)
		}
		slots = append(slots, s.Slot())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return slots, nil
}

func (r *MongoSessionRepo) list(ctx context.Context, filter bson.M) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.sessionColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := make([]models.Session, 0)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) ListByMentor(ctx context.Context, mentorID string) ([]models.Session, error) {
	return r.list(ctx, bson.M{"mentorId": mentorID})
}

func (r *MongoSessionRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Session, error) {
	return r.list(ctx, bson.M{"studentId": studentID})
}

func (r *MongoSessionRepo) update(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now()
	res, err := r.sessionColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *MongoSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.update(ctx, id, bson.M{"status": status})
}

func (r *MongoSessionRepo) SetCalendarEventID(ctx context.Context, id, eventID string) error {
	return r.update(ctx, id, bson.M{"calendarEventId": eventID})
}
