package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codelish/institute/internal/models"
	"github.com/codelish/institute/internal/views"
	"github.com/codelish/institute/pkg/export"
)

// ReportService turns the current snapshot into attendance reports.
type ReportService struct {
	data   *DataService
	logger *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(data *DataService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{data: data, logger: logger}
}

// AttendanceReport builds one row per student with presence totals and
// resolved course/group labels. An empty courseID covers everyone;
// otherwise only students enrolled in that course are included.
func (s *ReportService) AttendanceReport(courseID string) export.Report {
	courses := s.data.Courses()
	groups := s.data.Groups()
	students := s.data.Students()

	title := "Attendance Report"
	if courseID != "" {
		title = fmt.Sprintf("Attendance Report - %s", views.ResolveCourseName(courses, courseID))
	}

	report := export.Report{Title: title}
	for _, student := range students {
		if courseID != "" && student.CourseID != courseID {
			continue
		}
		report.Rows = append(report.Rows, s.row(student, courses, groups))
	}
	return report
}

func (s *ReportService) row(student models.Student, courses []models.Course, groups []models.Group) export.Row {
	present, absent := 0, 0
	for _, rec := range student.Attendance {
		if rec.Present {
			present++
		} else {
			absent++
		}
	}

	lastMark := ""
	if latest, ok := views.LatestAttendance(student); ok {
		lastMark = latest.Date
	}

	return export.Row{
		Student:  student.Name,
		Course:   views.ResolveCourseName(courses, student.CourseID),
		Group:    views.ResolveGroupLabel(groups, student.GroupID),
		Present:  present,
		Absent:   absent,
		LastMark: lastMark,
	}
}

// RenderAttendance renders the report in the requested format, one of
// "csv" or "pdf".
func (s *ReportService) RenderAttendance(courseID string, format string) ([]byte, error) {
	report := s.AttendanceReport(courseID)
	switch format {
	case "csv":
		return export.RenderCSV(report)
	case "pdf":
		return export.RenderPDF(report)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}
