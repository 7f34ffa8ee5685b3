package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// ExportApplications produces an xlsx workbook of every application on
// the calling faculty's projects, one sheet, one row per application.
// Returns the file content and a suggested filename.
func (s *ExportService) ExportApplications(userID uint) (*bytes.Buffer, string, error) {
	faculty, err := facultyForUser(s.db, userID)
	if err != nil {
		return nil, "", err
	}

	var applications []models.Application
	if err := s.db.
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("projects.faculty_id = ? AND projects.deleted_at IS NULL", faculty.ID).
		Preload("Student").Preload("Student.User").Preload("Project").
		Order("applications.project_id ASC, applications.applied_at ASC").
		Find(&applications).Error; err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applications"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Project", "Roll Number", "Student", "Course", "CGPA", "Priority", "Skills", "Status", "Applied At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, app := range applications {
		values := make([]interface{}, len(headers))
		if app.Project != nil {
			values[0] = app.Project.Title
		}
		if app.Student != nil {
			values[1] = app.Student.RollNumber
			values[3] = app.Student.Course
			if app.Student.User != nil {
				values[2] = app.Student.User.FullName()
			}
		}
		if app.CGPA != nil {
			values[4] = *app.CGPA
		}
		values[5] = app.Priority
		values[6] = app.Skills
		values[7] = app.Status
		values[8] = app.AppliedAt.Format("2006-01-02 15:04")

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the text-heavy columns
	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "D", 18)
	f.SetColWidth(sheet, "G", "G", 40)
	f.SetColWidth(sheet, "H", "I", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
