package mentorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorship/database"
	"mentorship/models"
	"mentorship/services/scheduling"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMentorRepo implements MentorRepository using MongoDB.
type MongoMentorRepo struct {
	coll *mongo.Collection
}

// NewMongoMentorRepo creates the repository on the "mentors" collection and
// ensures its indexes.
func NewMongoMentorRepo() (MentorRepository, error) {
	repo := &MongoMentorRepo{coll: database.DB().Collection("mentors")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoMentorRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "expertise", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create mentor indexes: %w", err)
	}
	return nil
}

func (r *MongoMentorRepo) GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var mentor models.Mentor
	if err := r.coll.FindOne(ctx, bson.M{"id": mentorID}).Decode(&mentor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mentor with id %s: %w", mentorID, err)
	}
	mentor.ApplyDefaults()
	return &mentor, nil
}

func (r *MongoMentorRepo) List(ctx context.Context) ([]models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mentors: %w", err)
	}
	defer cursor.Close(ctx)

	mentors := make([]models.Mentor, 0)
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("failed to decode mentors: %w", err)
	}
	for i := range mentors {
		mentors[i].ApplyDefaults()
	}
	return mentors, nil
}

func (r *MongoMentorRepo) Create(ctx context.Context, mentor *models.Mentor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	mentor.CreatedAt, mentor.UpdatedAt = now, now
	mentor.ApplyDefaults()
	if _, err := r.coll.InsertOne(ctx, mentor); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

// UpdateAvailability replaces the booking rules and returns the updated document.
func (r *MongoMentorRepo) UpdateAvailability(ctx context.Context, mentorID string, req models.UpdateAvailabilityRequest) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"availability": req.Availability,
		"updatedAt":    time.Now(),
	}
	if req.MinimumNotice != nil {
		set["minimumNotice"] = *req.MinimumNotice
	}
	if req.MaximumAdvanceBooking != nil {
		set["maximumAdvanceBooking"] = *req.MaximumAdvanceBooking
	}
	if req.Timezone != "" {
		set["timezone"] = req.Timezone
	}
	if req.CalendarID != "" {
		set["calendarId"] = req.CalendarID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Mentor
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": mentorID}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update availability for mentor %s: %w", mentorID, err)
	}
	updated.ApplyDefaults()
	return &updated, nil
}

func (r *MongoMentorRepo) SetFCMToken(ctx context.Context, mentorID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": mentorID}, bson.M{"$set": bson.M{"fcmToken": token}})
	if err != nil {
		return fmt.Errorf("failed to store FCM token for mentor %s: %w", mentorID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	return nil
}
