package services

import (
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkbook(t *testing.T) {
	service := NewExportService()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	points := []models.VelocityPoint{
		{SHA: "c2", Date: now.Add(-10 * time.Minute), Velocity: 0.2, Author: "octocat", Message: "second", Additions: 4, Deletions: 0},
		{SHA: "c1", Date: now, Velocity: 1.5, Author: "octocat", Message: "third", Additions: 10, Deletions: 5},
	}

	workbook, err := service.BuildWorkbook(points)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Velocity")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"SHA", "Date", "Velocity", "Author", "Message", "Additions", "Deletions"}, rows[0])
	assert.Equal(t, "c2", rows[1][0])
	assert.Equal(t, "2024-05-01T11:50:00Z", rows[1][1])
	assert.Equal(t, "c1", rows[2][0])

	velocity, err := workbook.GetCellValue("Velocity", "C3")
	require.NoError(t, err)
	assert.Equal(t, "1.5", velocity)
}

func TestBuildWorkbookEmptySeries(t *testing.T) {
	service := NewExportService()

	workbook, err := service.BuildWorkbook(nil)
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Velocity")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SHA", rows[0][0])
}
