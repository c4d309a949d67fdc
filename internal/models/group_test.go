package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleExpandsPairs(t *testing.T) {
	g := Group{AppointmentDay: "Monday, Wednesday", AppointmentTime: "09:00, 16:00"}

	entries := g.Schedule()
	require.Len(t, entries, 2)
	assert.Equal(t, ScheduleEntry{Day: "Monday", Time: "09:00"}, entries[0])
	assert.Equal(t, ScheduleEntry{Day: "Wednesday", Time: "16:00"}, entries[1])
}

func TestScheduleEmptyLists(t *testing.T) {
	assert.Empty(t, Group{}.Schedule())
}

func TestScheduleStopsAtShorterList(t *testing.T) {
	g := Group{AppointmentDay: "Monday, Wednesday, Friday", AppointmentTime: "09:00"}
	entries := g.Schedule()
	require.Len(t, entries, 1)
	assert.Equal(t, "Monday", entries[0].Day)
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		time    string
		wantErr bool
	}{
		{name: "matched pair", day: "Monday, Wednesday", time: "09:00, 09:00"},
		{name: "single", day: "Friday", time: "18:00"},
		{name: "both empty", day: "", time: ""},
		{name: "missing time", day: "Monday, Wednesday", time: "09:00", wantErr: true},
		{name: "missing day", day: "Monday", time: "09:00, 10:00", wantErr: true},
		{name: "whitespace entries ignored", day: "Monday, , Wednesday", time: "09:00, 10:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := Group{AppointmentDay: tc.day, AppointmentTime: tc.time}
			err := g.ValidateSchedule()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateAppliesOnlySetFields(t *testing.T) {
	g := Group{ID: "g1", Name: "Morning", CourseID: "c1", AppointmentDay: "Monday", AppointmentTime: "09:00"}
	name := "Early"
	GroupUpdate{Name: &name}.Apply(&g)
	assert.Equal(t, "Early", g.Name)
	assert.Equal(t, "c1", g.CourseID)
	assert.Equal(t, "Monday", g.AppointmentDay)
}
