package models

import (
	"fmt"
	"strings"
)

// Group is a scheduled cohort of students tied to one Course. The
// weekly meeting pattern is stored as two comma-joined parallel lists
// (one day and one time per slot); that shape is part of the durable
// schema and must survive round-trips unchanged.
type Group struct {
	ID              string `json:"id"`
	Name            string `json:"name" validate:"required"`
	CourseID        string `json:"courseId" validate:"required"`
	AppointmentDay  string `json:"appointmentDay"`
	AppointmentTime string `json:"appointmentTime"`
}

// GroupUpdate carries a partial group mutation; nil fields are left
// untouched.
type GroupUpdate struct {
	Name            *string `json:"name,omitempty"`
	CourseID        *string `json:"courseId,omitempty"`
	AppointmentDay  *string `json:"appointmentDay,omitempty"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
}

// Apply merges the update into the group.
func (u GroupUpdate) Apply(g *Group) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.CourseID != nil {
		g.CourseID = *u.CourseID
	}
	if u.AppointmentDay != nil {
		g.AppointmentDay = *u.AppointmentDay
	}
	if u.AppointmentTime != nil {
		g.AppointmentTime = *u.AppointmentTime
	}
}

// ScheduleEntry pairs one weekday with its meeting time.
type ScheduleEntry struct {
	Day  string
	Time string
}

// Schedule expands the parallel day/time lists into ordered pairs.
// Lists are validated to be of equal length on every write; should
// stored data disagree anyway, pairing stops at the shorter list.
func (g Group) Schedule() []ScheduleEntry {
	days := splitSchedule(g.AppointmentDay)
	times := splitSchedule(g.AppointmentTime)
	n := len(days)
	if len(times) < n {
		n = len(times)
	}
	entries := make([]ScheduleEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, ScheduleEntry{Day: days[i], Time: times[i]})
	}
	return entries
}

// ValidateSchedule rejects day/time lists of unequal cardinality.
func (g Group) ValidateSchedule() error {
	days := splitSchedule(g.AppointmentDay)
	times := splitSchedule(g.AppointmentTime)
	if len(days) != len(times) {
		return fmt.Errorf("schedule has %d days but %d times", len(days), len(times))
	}
	return nil
}

func splitSchedule(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
