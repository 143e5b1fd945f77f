// Package export renders roster views for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yigit/mentoraid/internal/app/models"
)

// Filename is the suggested download name of the CSV export
const Filename = "students-export.csv"

// ContentType is the media type of the CSV export
const ContentType = "text/csv"

var header = []string{"Name", "Student ID", "Attendance", "Average Marks", "Fee Status", "Risk Level"}

// WriteStudentsCSV writes a header and one row per student, in the given order
func WriteStudentsCSV(w io.Writer, students []models.Student) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range students {
		row := []string{
			s.Name,
			s.StudentID,
			strconv.Itoa(s.Attendance) + "%",
			strconv.Itoa(s.AverageMarks),
			string(s.FeeStatus),
			string(s.RiskLevel),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", s.StudentID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
