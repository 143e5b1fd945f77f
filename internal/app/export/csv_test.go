package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
)

func TestWriteStudentsCSV(t *testing.T) {
	students := []models.Student{
		{Name: "Emma Thompson", StudentID: "STU0001", Attendance: 64, AverageMarks: 58, FeeStatus: models.FeeOverdue, RiskLevel: models.RiskHigh},
		{Name: "Liam Johnson", StudentID: "STU0002", Attendance: 91, AverageMarks: 85, FeeStatus: models.FeePaid, RiskLevel: models.RiskLow},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStudentsCSV(&buf, students))

	assert.Equal(t,
		"Name,Student ID,Attendance,Average Marks,Fee Status,Risk Level\n"+
			"Emma Thompson,STU0001,64%,58,overdue,high\n"+
			"Liam Johnson,STU0002,91%,85,paid,low\n",
		buf.String())
}

func TestWriteStudentsCSVEmptyView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudentsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteStudentsCSVQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudentsCSV(&buf, []models.Student{{Name: "Doe, Jane", StudentID: "STU0003"}}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Doe, Jane", rows[1][0])
	assert.Len(t, rows[1], 6)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteStudentsCSVPropagatesWriteErrors(t *testing.T) {
	assert.Error(t, WriteStudentsCSV(failingWriter{}, []models.Student{{Name: "x"}}))
}
