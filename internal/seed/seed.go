// Package seed synthesizes the mock student roster the dashboard runs on.
package seed

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/risk"
)

// DefaultRosterSize is the number of students generated per dashboard load
const DefaultRosterSize = 150

const (
	attendanceFloor = 60
	attendanceSpan  = 40
	marksFloor      = 50
	marksSpan       = 40
	activityWindow  = 30 * 24 * time.Hour
)

var names = []string{
	"Emma Thompson", "Liam Johnson", "Olivia Davis", "Noah Wilson", "Ava Garcia",
	"William Martinez", "Sophia Rodriguez", "James Anderson", "Isabella Lopez", "Benjamin Lee",
	"Mia Gonzalez", "Lucas Perez", "Charlotte Turner", "Henry White", "Amelia Hall",
	"Alexander Young", "Harper King", "Michael Scott", "Evelyn Adams", "Daniel Baker",
	"Abigail Nelson", "Matthew Carter", "Emily Mitchell", "Joseph Roberts", "Elizabeth Phillips",
	"David Evans", "Sofia Collins", "Samuel Stewart", "Avery Morris", "Christopher Rogers",
	"Ella Reed", "Andrew Cook", "Grace Bell", "Joshua Bailey", "Chloe Cooper", "Ryan Howard",
	"Victoria Ward", "Nathan Torres", "Lily Peterson", "Caleb Gray", "Zoe Ramirez",
	"Gabriel James", "Penelope Watson", "Christian Brooks", "Layla Kelly", "Hunter Sanders",
	"Nora Price", "Isaiah Bennett", "Riley Wood", "Thomas Barnes", "Leah Ross",
}

// Generator produces rosters from a pseudo-random source. It is not safe for
// concurrent use; callers serialize access.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator. A zero seed picks a time-based seed so
// every load differs; a fixed seed makes rosters reproducible.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the clock used for last-activity timestamps
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Students generates count records sorted by risk score, highest first.
func (g *Generator) Students(count int) []models.Student {
	if count < 0 {
		count = 0
	}
	now := g.now()
	students := make([]models.Student, 0, count)

	for i := 0; i < count; i++ {
		students = append(students, g.student(i, now))
	}

	sort.SliceStable(students, func(a, b int) bool {
		return students[a].RiskScore > students[b].RiskScore
	})
	return students
}

func (g *Generator) student(i int, now time.Time) models.Student {
	name := nameFor(i)
	attendance := g.rng.Intn(attendanceSpan) + attendanceFloor
	marks := g.rng.Intn(marksSpan) + marksFloor
	fee := models.FeeStatuses[g.rng.Intn(len(models.FeeStatuses))]

	noise := g.rng.Float64()*2*risk.MaxNoise - risk.MaxNoise
	assessment := risk.ScoreWithNoise(float64(attendance), float64(marks), fee, noise)

	lastActivity := now.Add(-time.Duration(g.rng.Int63n(int64(activityWindow))))

	return models.Student{
		ID:           strconv.Itoa(i + 1),
		Name:         name,
		Email:        EmailFor(name),
		StudentID:    fmt.Sprintf("STU%04d", i+1),
		Class:        models.Classes[g.rng.Intn(len(models.Classes))],
		Department:   models.Departments[g.rng.Intn(len(models.Departments))],
		Attendance:   attendance,
		AverageMarks: marks,
		FeeStatus:    fee,
		RiskLevel:    assessment.Level,
		RiskScore:    assessment.Score,
		LastActivity: lastActivity.UTC(),
	}
}

func nameFor(i int) string {
	if name := names[i%len(names)]; name != "" {
		return name
	}
	return fmt.Sprintf("Student %d", i+1)
}

// EmailFor derives the school address of a student. Only the first space is
// replaced, so three-part names keep their remaining spaces.
func EmailFor(name string) string {
	return strings.Replace(strings.ToLower(name), " ", ".", 1) + "@school.edu"
}
