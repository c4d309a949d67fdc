package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelish/institute/internal/models"
)

var (
	testCourses = []models.Course{
		{ID: "c1", Name: "Python"},
		{ID: "c2", Name: "Go"},
	}
	testGroups = []models.Group{
		{ID: "g1", Name: "Morning", CourseID: "c1", AppointmentDay: "Monday, Wednesday", AppointmentTime: "09:00, 09:00"},
		{ID: "g2", Name: "Evening", CourseID: "c2", AppointmentDay: "Friday", AppointmentTime: "18:00"},
		{ID: "g3", Name: "Late", CourseID: "c1", AppointmentDay: "Friday", AppointmentTime: "20:00"},
	}
	testStudents = []models.Student{
		{ID: "s1", Name: "Ana", CourseID: "c1", GroupID: "g1"},
		{ID: "s2", Name: "Boris", CourseID: "c1", GroupID: "g3"},
		{ID: "s3", Name: "Clara", CourseID: "c1", GroupID: "g1"},
	}
)

func TestGroupsForCoursePreservesOrder(t *testing.T) {
	got := GroupsForCourse(testGroups, "c1")
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, "g3", got[1].ID)

	assert.Empty(t, GroupsForCourse(testGroups, "nope"))
}

func TestStudentsForGroupPreservesOrder(t *testing.T) {
	got := StudentsForGroup(testStudents, "g1")
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "s3", got[1].ID)
}

func TestLatestAttendance(t *testing.T) {
	student := models.Student{Attendance: []models.AttendanceRecord{
		{Date: "2024-01-08", Present: true},
		{Date: "2024-02-01", Present: false},
		{Date: "2024-01-01", Present: true},
	}}

	latest, ok := LatestAttendance(student)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", latest.Date)
	assert.False(t, latest.Present)

	_, ok = LatestAttendance(models.Student{})
	assert.False(t, ok)
}

func TestResolveCourseName(t *testing.T) {
	assert.Equal(t, "Python", ResolveCourseName(testCourses, "c1"))
	assert.Equal(t, UnknownCourseName, ResolveCourseName(testCourses, "dangling"))
	assert.Equal(t, UnknownCourseName, ResolveCourseName(nil, ""))
}

func TestResolveGroupLabel(t *testing.T) {
	assert.Equal(t, "Morning (Monday, Wednesday at 09:00, 09:00)", ResolveGroupLabel(testGroups, "g1"))
	assert.Equal(t, NoGroupLabel, ResolveGroupLabel(testGroups, ""))
	assert.Equal(t, NoGroupLabel, ResolveGroupLabel(testGroups, "dangling"))
}

func TestScheduleSummary(t *testing.T) {
	assert.Equal(t, "Monday 09:00, Wednesday 09:00", ScheduleSummary(testGroups[0]))
	assert.Equal(t, "", ScheduleSummary(models.Group{}))
}
