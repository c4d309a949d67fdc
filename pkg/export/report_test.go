package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleReport = Report{
	Title: "Attendance Report",
	Rows: []Row{
		{Student: "Ana", Course: "Python", Group: "Morning (Monday at 09:00)", Present: 3, Absent: 1, LastMark: "2024-02-01"},
		{Student: "Boris", Course: "Unknown Course", Group: "No Group", Present: 0, Absent: 0, LastMark: ""},
	},
}

func TestRenderCSV(t *testing.T) {
	payload, err := RenderCSV(sampleReport)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student", "Course", "Group", "Present", "Absent", "Last Mark"}, records[0])
	assert.Equal(t, []string{"Ana", "Python", "Morning (Monday at 09:00)", "3", "1", "2024-02-01"}, records[1])
	assert.Equal(t, []string{"Boris", "Unknown Course", "No Group", "0", "0", ""}, records[2])
}

func TestRenderCSVEmptyReport(t *testing.T) {
	payload, err := RenderCSV(Report{Title: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(string(payload)), "\n")+1)
}

func TestRenderPDF(t *testing.T) {
	payload, err := RenderPDF(sampleReport)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	assert.NotEmpty(t, payload)
}
