// Package repository holds the authoritative in-memory collections of
// courses, groups and students and applies every mutation, including
// the cascade and attendance-merge rules. It never leaves the
// collections inconsistent: all checks happen before any change.
//
// Inserts and updates validate their payloads up front: required
// fields (entity names) and group schedule cardinality are checked and
// bad payloads are rejected with a validation error before the
// collections change. This mirrors the form validation the client UI
// performs and is intentionally stricter than storage alone requires.
package repository

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/codelish/institute/internal/models"
	appErrors "github.com/codelish/institute/pkg/errors"
)

// Repository owns the three entity collections. Collections keep
// insertion order; lookups are linear, which is fine at the scale of a
// single institute on a single device.
type Repository struct {
	mu        sync.RWMutex
	validator *validator.Validate

	courses  []models.Course
	groups   []models.Group
	students []models.Student
}

// New constructs an empty repository.
func New(validate *validator.Validate) *Repository {
	if validate == nil {
		validate = validator.New()
	}
	return &Repository{validator: validate}
}

// Replace installs freshly loaded collections, discarding current state.
func (r *Repository) Replace(courses []models.Course, groups []models.Group, students []models.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = courses
	r.groups = groups
	r.students = students
}

// Courses returns a copy of the course collection in insertion order.
func (r *Repository) Courses() []models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Course, len(r.courses))
	copy(out, r.courses)
	return out
}

// Groups returns a copy of the group collection in insertion order.
func (r *Repository) Groups() []models.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// Students returns a deep copy of the student collection in insertion
// order, attendance included.
func (r *Repository) Students() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Student, len(r.students))
	for i, s := range r.students {
		out[i] = s.Clone()
	}
	return out
}

// AddCourse inserts a course, assigning an id when none is supplied.
func (r *Repository) AddCourse(course models.Course) (models.Course, error) {
	if err := r.validator.Struct(course); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid course payload")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.NewString()
	} else if r.findCourse(course.ID) >= 0 {
		return models.Course{}, appErrors.Clone(appErrors.ErrDuplicateID, fmt.Sprintf("course %s already exists", course.ID))
	}
	r.courses = append(r.courses, course)
	return course, nil
}

// UpdateCourse merges the partial update into an existing course.
func (r *Repository) UpdateCourse(id string, upd models.CourseUpdate) (models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findCourse(id)
	if i < 0 {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", id))
	}
	merged := r.courses[i]
	upd.Apply(&merged)
	if err := r.validator.Struct(merged); err != nil {
		return models.Course{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid course payload")
	}
	r.courses[i] = merged
	return merged, nil
}

// DeleteCourse removes the course, every group scheduled under it, and
// every student that belonged to one of those groups. Deleting an
// absent id is a no-op.
func (r *Repository) DeleteCourse(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findCourse(id)
	if i >= 0 {
		r.courses = append(r.courses[:i], r.courses[i+1:]...)
	}

	removedGroups := make(map[string]struct{})
	kept := r.groups[:0]
	for _, g := range r.groups {
		if g.CourseID == id {
			removedGroups[g.ID] = struct{}{}
			continue
		}
		kept = append(kept, g)
	}
	r.groups = kept

	if len(removedGroups) == 0 {
		return
	}
	keptStudents := r.students[:0]
	for _, s := range r.students {
		if _, gone := removedGroups[s.GroupID]; gone {
			continue
		}
		keptStudents = append(keptStudents, s)
	}
	r.students = keptStudents
}

// AddGroup inserts a group after checking its schedule lists line up.
func (r *Repository) AddGroup(group models.Group) (models.Group, error) {
	if err := r.validator.Struct(group); err != nil {
		return models.Group{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid group payload")
	}
	if err := group.ValidateSchedule(); err != nil {
		return models.Group{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid group schedule")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.NewString()
	} else if r.findGroup(group.ID) >= 0 {
		return models.Group{}, appErrors.Clone(appErrors.ErrDuplicateID, fmt.Sprintf("group %s already exists", group.ID))
	}
	r.groups = append(r.groups, group)
	return group, nil
}

// UpdateGroup merges the partial update into an existing group.
func (r *Repository) UpdateGroup(id string, upd models.GroupUpdate) (models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findGroup(id)
	if i < 0 {
		return models.Group{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("group %s not found", id))
	}
	merged := r.groups[i]
	upd.Apply(&merged)
	if err := r.validator.Struct(merged); err != nil {
		return models.Group{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid group payload")
	}
	if err := merged.ValidateSchedule(); err != nil {
		return models.Group{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid group schedule")
	}
	r.groups[i] = merged
	return merged, nil
}

// DeleteGroup removes the group and clears GroupID on every student
// that referenced it. The students themselves are kept. Deleting an
// absent id is a no-op.
func (r *Repository) DeleteGroup(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findGroup(id)
	if i >= 0 {
		r.groups = append(r.groups[:i], r.groups[i+1:]...)
	}
	for j := range r.students {
		if r.students[j].GroupID == id {
			r.students[j].GroupID = ""
		}
	}
}

// AddStudent inserts a student, assigning an id when none is supplied.
func (r *Repository) AddStudent(student models.Student) (models.Student, error) {
	if err := r.validator.Struct(student); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if student.ID == "" {
		student.ID = uuid.NewString()
	} else if r.findStudent(student.ID) >= 0 {
		return models.Student{}, appErrors.Clone(appErrors.ErrDuplicateID, fmt.Sprintf("student %s already exists", student.ID))
	}
	r.students = append(r.students, student.Clone())
	return student, nil
}

// UpdateStudent merges the partial update into an existing student.
func (r *Repository) UpdateStudent(id string, upd models.StudentUpdate) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findStudent(id)
	if i < 0 {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
	}
	merged := r.students[i]
	upd.Apply(&merged)
	if err := r.validator.Struct(merged); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	r.students[i] = merged
	return merged.Clone(), nil
}

// DeleteStudent removes the student. Students are leaves, nothing
// cascades. Deleting an absent id is a no-op.
func (r *Repository) DeleteStudent(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findStudent(id)
	if i >= 0 {
		r.students = append(r.students[:i], r.students[i+1:]...)
	}
}

// MarkAttendance applies a batch of marks. Marks for unknown students
// are skipped without error, and the rest of the batch still applies.
// A second mark for a date a student already has overwrites Present in
// place, so attendance stays unique per date. Returns how many marks
// were applied.
func (r *Repository) MarkAttendance(marks []models.AttendanceMark) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := 0
	for _, mark := range marks {
		i := r.findStudent(mark.StudentID)
		if i < 0 {
			continue
		}
		s := &r.students[i]
		merged := false
		for j := range s.Attendance {
			if s.Attendance[j].Date == mark.Date {
				s.Attendance[j].Present = mark.Present
				merged = true
				break
			}
		}
		if !merged {
			s.Attendance = append(s.Attendance, models.AttendanceRecord{Date: mark.Date, Present: mark.Present})
		}
		applied++
	}
	return applied
}

// ClearAll empties all three collections.
func (r *Repository) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = nil
	r.groups = nil
	r.students = nil
}

func (r *Repository) findCourse(id string) int {
	for i, c := range r.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) findGroup(id string) int {
	for i, g := range r.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) findStudent(id string) int {
	for i, s := range r.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
