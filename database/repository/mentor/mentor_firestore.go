package mentorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorship/models"
	"mentorship/services/scheduling"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreMentorRepo reads mentor profiles from the "mentors" collection,
// one document per mentor keyed by its id.
type FirestoreMentorRepo struct {
	coll *firestore.CollectionRef
	fs   *firestore.Client
}

func NewFirestoreMentorRepo(client *firestore.Client) MentorRepository {
	return &FirestoreMentorRepo{coll: client.Collection("mentors"), fs: client}
}

func notFound(mentorID string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("mentor %s: %w", mentorID, scheduling.ErrMentorNotFound)
	}
	return nil
}

func (r *FirestoreMentorRepo) GetMentor(ctx context.Context, mentorID string) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll.Doc(mentorID).Get(ctx)
	if err != nil {
		if nf := notFound(mentorID, err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to fetch mentor with id %s: %w", mentorID, err)
	}

	var mentor models.Mentor
	if err := snap.DataTo(&mentor); err != nil {
		return nil, fmt.Errorf("failed to decode mentor %s: %w", mentorID, err)
	}
	if mentor.ID == "" {
		mentor.ID = snap.Ref.ID
	}
	mentor.ApplyDefaults()
	return &mentor, nil
}

func (r *FirestoreMentorRepo) List(ctx context.Context) ([]models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	iter := r.coll.OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	mentors := make([]models.Mentor, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve mentors: %w", err)
		}
		var m models.Mentor
		if err := snap.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode mentor %s: %w", snap.Ref.ID, err)
		}
		if m.ID == "" {
			m.ID = snap.Ref.ID
		}
		m.ApplyDefaults()
		mentors = append(mentors, m)
	}
	return mentors, nil
}

func (r *FirestoreMentorRepo) Create(ctx context.Context, mentor *models.Mentor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	mentor.CreatedAt, mentor.UpdatedAt = now, now
	mentor.ApplyDefaults()
	if _, err := r.coll.Doc(mentor.ID).Create(ctx, mentor); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

// UpdateAvailability runs read-modify-write in a Firestore transaction so
// concurrent profile edits are not lost.
func (r *FirestoreMentorRepo) UpdateAvailability(ctx context.Context, mentorID string, req models.UpdateAvailabilityRequest) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ref := r.coll.Doc(mentorID)
	var updated models.Mentor
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var m models.Mentor
		if err := snap.DataTo(&m); err != nil {
			return err
		}
		applyAvailabilityUpdate(&m, req, time.Now())
		m.ApplyDefaults()
		updated = m
		return tx.Set(ref, m)
	})
	if err != nil {
		if nf := notFound(mentorID, err); nf != nil {
			return nil, nf
		}
		return nil, fmt.Errorf("failed to update availability for mentor %s: %w", mentorID, err)
	}
	return &updated, nil
}

func (r *FirestoreMentorRepo) SetFCMToken(ctx context.Context, mentorID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.Doc(mentorID).Update(ctx, []firestore.Update{{Path: "fcmToken", Value: token}})
	if err != nil {
		if nf := notFound(mentorID, err); nf != nil {
			return nf
		}
		return fmt.Errorf("failed to store FCM token for mentor %s: %w", mentorID, err)
	}
	return nil
}
