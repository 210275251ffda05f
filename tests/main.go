package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"mentorship/config"
	"mentorship/database"
	"mentorship/database/repository"
	"mentorship/models"
	"mentorship/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// candidateWindow is a realistic weekly window for a mentor.
type candidateWindow struct {
	Start, End string
}

var candidateWindows = []candidateWindow{
	{"08:00", "11:00"},
	{"09:00", "17:00"},
	{"12:30", "15:00"},
	{"17:00", "20:30"},
}

var timezones = []string{"Africa/Nairobi", "Europe/Berlin", "America/New_York", "Asia/Kolkata", "UTC"}

var expertise = [][]string{
	{"go", "backend"},
	{"system design", "career growth"},
	{"ux research", "portfolio review"},
	{"data engineering", "sql"},
	{"interview prep"},
}

func randomMentor(i int) models.Mentor {
	var schedule []models.WeeklyScheduleEntry
	for d := time.Monday; d <= time.Saturday; d++ {
		if rand.Intn(3) == 0 {
			continue
		}
		w := candidateWindows[rand.Intn(len(candidateWindows))]
		schedule = append(schedule, models.WeeklyScheduleEntry{DayOfWeek: d, StartTime: w.Start, EndTime: w.End, IsAvailable: true})
	}

	return models.Mentor{
		ID:        fmt.Sprintf("mentor-%03d", i),
		Name:      fmt.Sprintf("Sample Mentor %d", i),
		Email:     fmt.Sprintf("mentor_%d@example.com", i),
		Headline:  "Volunteer mentor",
		Expertise: expertise[rand.Intn(len(expertise))],
		Timezone:  timezones[rand.Intn(len(timezones))],
		Availability: models.MentorAvailability{
			WeeklySchedule: schedule,
		},
		MinimumNotice:         []int{0, 12, 24, 48}[rand.Intn(4)],
		MaximumAdvanceBooking: []int{14, 30, 60}[rand.Intn(3)],
	}
}

// Seeds the mentors collection with the demo mentors plus random ones and
// prints bearer tokens for manual testing.
func main() {
	config.LoadConfig()
	database.InitDB()
	defer func() { _ = database.CloseDB(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := database.DB().Collection("mentors").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear mentors collection: %v", err)
	}

	repo, err := repository.NewMongoMentorRepo()
	if err != nil {
		log.Fatalf("Failed to open mentor repository: %v", err)
	}

	mentors := repository.DemoMentors()
	for i := 1; i <= 20; i++ {
		mentors = append(mentors, randomMentor(i))
	}

	for i := range mentors {
		if err := repo.Create(ctx, &mentors[i]); err != nil {
			log.Fatalf("Failed to insert %s: %v", mentors[i].ID, err)
		}
	}
	log.Printf("Inserted %d mentors", len(mentors))

	for _, m := range mentors[:2] {
		tok, err := utils.GenerateToken(m.ID, utils.RoleMentor, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to sign token: %v", err)
		}
		fmt.Printf("%s (mentor): %s\n", m.ID, tok)
	}
	tok, err := utils.GenerateToken("student-demo", utils.RoleMentee, 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Printf("student-demo (mentee): %s\n", tok)
}
