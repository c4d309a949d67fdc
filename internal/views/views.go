// Package views holds pure query helpers over collection snapshots.
// Nothing here mutates state or touches storage.
package views

import (
	"fmt"
	"strings"

	"github.com/codelish/institute/internal/models"
)

// Display fallbacks for dangling references. Weak ids are normal in
// this model and must never surface as errors.
const (
	UnknownCourseName = "Unknown Course"
	NoGroupLabel      = "No Group"
)

// GroupsForCourse filters groups by course, preserving insertion order.
func GroupsForCourse(groups []models.Group, courseID string) []models.Group {
	out := make([]models.Group, 0)
	for _, g := range groups {
		if g.CourseID == courseID {
			out = append(out, g)
		}
	}
	return out
}

// StudentsForGroup filters students by group, preserving insertion order.
func StudentsForGroup(students []models.Student, groupID string) []models.Student {
	out := make([]models.Student, 0)
	for _, s := range students {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out
}

// LatestAttendance returns the record with the maximum date. ISO dates
// compare lexicographically, so no parsing is needed. The second
// return is false when the student has no attendance yet.
func LatestAttendance(student models.Student) (models.AttendanceRecord, bool) {
	if len(student.Attendance) == 0 {
		return models.AttendanceRecord{}, false
	}
	latest := student.Attendance[0]
	for _, rec := range student.Attendance[1:] {
		if rec.Date > latest.Date {
			latest = rec
		}
	}
	return latest, true
}

// ResolveCourseName returns the course name or the unknown placeholder.
func ResolveCourseName(courses []models.Course, courseID string) string {
	for _, c := range courses {
		if c.ID == courseID {
			return c.Name
		}
	}
	return UnknownCourseName
}

// ResolveGroupLabel renders "Name (days at times)" for a known group
// and the no-group placeholder otherwise.
func ResolveGroupLabel(groups []models.Group, groupID string) string {
	for _, g := range groups {
		if g.ID == groupID {
			return fmt.Sprintf("%s (%s at %s)", g.Name, g.AppointmentDay, g.AppointmentTime)
		}
	}
	return NoGroupLabel
}

// ScheduleSummary renders a group's meeting pattern one pair at a
// time, e.g. "Monday 09:00, Wednesday 09:00".
func ScheduleSummary(group models.Group) string {
	entries := group.Schedule()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s %s", e.Day, e.Time))
	}
	return strings.Join(parts, ", ")
}
