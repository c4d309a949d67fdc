package repository

import (
	"encoding/json"

	"github.com/codelish/institute/internal/models"
	appErrors "github.com/codelish/institute/pkg/errors"
)

// The durable schema is a plain JSON array per collection, field names
// exactly as tagged on the models. Encoding always goes through the
// snapshot accessors so persistence never races a mutation.

// EncodeCourses serializes the course collection.
func (r *Repository) EncodeCourses() (string, error) {
	data, err := json.Marshal(r.Courses())
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrPersistence.Code, "encode courses")
	}
	return string(data), nil
}

// EncodeGroups serializes the group collection.
func (r *Repository) EncodeGroups() (string, error) {
	data, err := json.Marshal(r.Groups())
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrPersistence.Code, "encode groups")
	}
	return string(data), nil
}

// EncodeStudents serializes the student collection with attendance.
func (r *Repository) EncodeStudents() (string, error) {
	data, err := json.Marshal(r.Students())
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrPersistence.Code, "encode students")
	}
	return string(data), nil
}

// DecodeCourses parses a stored course slot.
func DecodeCourses(raw string) ([]models.Course, error) {
	var courses []models.Course
	if err := json.Unmarshal([]byte(raw), &courses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDeserialization.Code, "decode courses slot")
	}
	return courses, nil
}

// DecodeGroups parses a stored group slot.
func DecodeGroups(raw string) ([]models.Group, error) {
	var groups []models.Group
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDeserialization.Code, "decode groups slot")
	}
	return groups, nil
}

// DecodeStudents parses a stored student slot.
func DecodeStudents(raw string) ([]models.Student, error) {
	var students []models.Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDeserialization.Code, "decode students slot")
	}
	return students, nil
}
