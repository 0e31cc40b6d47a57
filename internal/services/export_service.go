package services

import (
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Velocity"

// ExportService renders a velocity series into an Excel workbook with one
// header row and one row per point.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildWorkbook creates the workbook for the given series. The caller is
// responsible for closing the returned file.
func (s *ExportService) BuildWorkbook(points []models.VelocityPoint) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"SHA", "Date", "Velocity", "Author", "Message", "Additions", "Deletions"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, point := range points {
		values := []interface{}{
			point.SHA,
			point.Date.Format(time.RFC3339),
			point.Velocity,
			point.Author,
			point.Message,
			point.Additions,
			point.Deletions,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
