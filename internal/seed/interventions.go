package seed

import (
	"time"

	"github.com/yigit/mentoraid/internal/app/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Interventions returns the starter history every student is shown before
// mentors log anything, in display order.
func Interventions(studentID string) []models.Intervention {
	return []models.Intervention{
		{
			ID:          "1",
			StudentID:   studentID,
			Date:        day(2024, time.January, 15),
			Type:        models.InterventionMeeting,
			Title:       "Parent-Teacher Conference",
			Description: "Discussed attendance concerns and academic progress. Parent committed to morning routine improvements.",
			Outcome:     models.OutcomeCompleted,
			Mentor:      "Ms. Johnson",
		},
		{
			ID:          "2",
			StudentID:   studentID,
			Date:        day(2024, time.January, 10),
			Type:        models.InterventionResource,
			Title:       "Math Tutoring Program Enrollment",
			Description: "Enrolled student in peer tutoring program for mathematics. Sessions scheduled for Tuesdays and Thursdays.",
			Outcome:     models.OutcomeCompleted,
			Mentor:      "Mr. Davis",
		},
		{
			ID:          "3",
			StudentID:   studentID,
			Date:        day(2024, time.January, 8),
			Type:        models.InterventionPlan,
			Title:       "Attendance Improvement Plan",
			Description: "Created structured plan with daily check-ins and weekly goals. Target: 80% attendance within 6 weeks.",
			Outcome:     models.OutcomePending,
			Mentor:      "Ms. Johnson",
		},
		{
			ID:          "4",
			StudentID:   studentID,
			Date:        day(2024, time.January, 22),
			Type:        models.InterventionCall,
			Title:       "Weekly Progress Check",
			Description: "Scheduled weekly call to discuss progress on attendance goals and academic improvements.",
			Outcome:     models.OutcomeScheduled,
			Mentor:      "Ms. Johnson",
		},
	}
}
