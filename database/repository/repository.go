package repository

import (
	mentorRepo "mentorship/database/repository/mentor"
	sessionRepo "mentorship/database/repository/session"
)

// Re-export the MentorRepository interface and constructors.
type MentorRepository = mentorRepo.MentorRepository

var (
	NewMongoMentorRepo     = mentorRepo.NewMongoMentorRepo
	NewFirestoreMentorRepo = mentorRepo.NewFirestoreMentorRepo
	NewMemoryMentorRepo    = mentorRepo.NewMemoryMentorRepo
	DemoMentors            = mentorRepo.DemoMentors
)

// Re-export the SessionRepository interface, constructors and errors.
type SessionRepository = sessionRepo.SessionRepository

var (
	NewMongoSessionRepo  = sessionRepo.NewMongoSessionRepo
	NewMemorySessionRepo = sessionRepo.NewMemorySessionRepo

	ErrSessionNotFound = sessionRepo.ErrSessionNotFound
	ErrSlotTaken       = sessionRepo.ErrSlotTaken
)
