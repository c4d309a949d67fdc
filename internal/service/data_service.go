// Package service exposes the single access point presentation code
// talks to: load-once initialization, read snapshots, and a mutation
// surface whose in-memory effect is visible before the call returns
// while the durable write happens in the background.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/codelish/institute/internal/models"
	"github.com/codelish/institute/internal/repository"
	"github.com/codelish/institute/pkg/kv"
	"github.com/codelish/institute/pkg/metrics"
	"github.com/codelish/institute/pkg/persist"
)

// Slot keys are the durable contract with earlier installs; renaming
// them would strand existing data.
const (
	SlotCourses  = "codelish_courses"
	SlotStudents = "codelish_students"
	SlotGroups   = "codelish_groups"
)

// DataService wraps the entity repository with lifecycle and
// durability. Mutations mirror the repository surface 1:1 and queue a
// write of only the slot(s) they touched.
type DataService struct {
	repo    *repository.Repository
	store   kv.Store
	writer  *persist.Writer
	logger  *zap.Logger
	metrics *metrics.Metrics

	loaded atomic.Bool
}

// NewDataService constructs the facade.
func NewDataService(repo *repository.Repository, store kv.Store, writer *persist.Writer, logger *zap.Logger, m *metrics.Metrics) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &DataService{repo: repo, store: store, writer: writer, logger: logger, metrics: m}
}

// Initialize reads the three persisted slots into memory. A missing
// slot means an empty collection; a slot that cannot be read or parsed
// is logged and degrades to an empty collection. Startup is never
// blocked by bad storage, so the session always reaches a usable
// state. After Initialize returns, IsDataLoaded reports true.
func (s *DataService) Initialize(ctx context.Context) {
	start := time.Now()

	var courses []models.Course
	if raw, ok := s.loadSlot(ctx, SlotCourses); ok {
		if decoded, err := repository.DecodeCourses(raw); err != nil {
			s.logger.Sugar().Errorw("corrupt courses slot, starting empty", "error", err)
		} else {
			courses = decoded
		}
	}

	var groups []models.Group
	if raw, ok := s.loadSlot(ctx, SlotGroups); ok {
		if decoded, err := repository.DecodeGroups(raw); err != nil {
			s.logger.Sugar().Errorw("corrupt groups slot, starting empty", "error", err)
		} else {
			groups = decoded
		}
	}

	var students []models.Student
	if raw, ok := s.loadSlot(ctx, SlotStudents); ok {
		if decoded, err := repository.DecodeStudents(raw); err != nil {
			s.logger.Sugar().Errorw("corrupt students slot, starting empty", "error", err)
		} else {
			students = decoded
		}
	}

	s.repo.Replace(courses, groups, students)
	s.loaded.Store(true)
	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.logger.Sugar().Infow("data loaded",
		"courses", len(courses), "groups", len(groups), "students", len(students),
		"duration", time.Since(start))
}

// IsDataLoaded reports whether Initialize has completed.
func (s *DataService) IsDataLoaded() bool {
	return s.loaded.Load()
}

// Courses returns the current course snapshot.
func (s *DataService) Courses() []models.Course {
	return s.repo.Courses()
}

// Groups returns the current group snapshot.
func (s *DataService) Groups() []models.Group {
	return s.repo.Groups()
}

// Students returns the current student snapshot.
func (s *DataService) Students() []models.Student {
	return s.repo.Students()
}

// AddCourse inserts a course and queues the courses slot write.
func (s *DataService) AddCourse(course models.Course) (models.Course, error) {
	created, err := s.repo.AddCourse(course)
	if err != nil {
		return models.Course{}, err
	}
	s.persistCourses()
	return created, nil
}

// UpdateCourse merges a partial update and queues the courses slot write.
func (s *DataService) UpdateCourse(id string, upd models.CourseUpdate) (models.Course, error) {
	updated, err := s.repo.UpdateCourse(id, upd)
	if err != nil {
		return models.Course{}, err
	}
	s.persistCourses()
	return updated, nil
}

// DeleteCourse cascades through groups and their students, then queues
// writes for all three slots since all three may have changed.
func (s *DataService) DeleteCourse(id string) {
	s.repo.DeleteCourse(id)
	s.persistCourses()
	s.persistGroups()
	s.persistStudents()
}

// AddGroup inserts a group and queues the groups slot write.
func (s *DataService) AddGroup(group models.Group) (models.Group, error) {
	created, err := s.repo.AddGroup(group)
	if err != nil {
		return models.Group{}, err
	}
	s.persistGroups()
	return created, nil
}

// UpdateGroup merges a partial update and queues the groups slot write.
func (s *DataService) UpdateGroup(id string, upd models.GroupUpdate) (models.Group, error) {
	updated, err := s.repo.UpdateGroup(id, upd)
	if err != nil {
		return models.Group{}, err
	}
	s.persistGroups()
	return updated, nil
}

// DeleteGroup removes the group and orphans its students, then queues
// writes for the groups and students slots.
func (s *DataService) DeleteGroup(id string) {
	s.repo.DeleteGroup(id)
	s.persistGroups()
	s.persistStudents()
}

// AddStudent inserts a student and queues the students slot write.
func (s *DataService) AddStudent(student models.Student) (models.Student, error) {
	created, err := s.repo.AddStudent(student)
	if err != nil {
		return models.Student{}, err
	}
	s.persistStudents()
	return created, nil
}

// UpdateStudent merges a partial update and queues the students slot write.
func (s *DataService) UpdateStudent(id string, upd models.StudentUpdate) (models.Student, error) {
	updated, err := s.repo.UpdateStudent(id, upd)
	if err != nil {
		return models.Student{}, err
	}
	s.persistStudents()
	return updated, nil
}

// DeleteStudent removes the student and queues the students slot write.
func (s *DataService) DeleteStudent(id string) {
	s.repo.DeleteStudent(id)
	s.persistStudents()
}

// MarkAttendance applies a batch of marks and queues the students slot
// write. Marks for unknown students are skipped; the rest apply.
func (s *DataService) MarkAttendance(marks []models.AttendanceMark) {
	applied := s.repo.MarkAttendance(marks)
	if applied < len(marks) {
		s.logger.Sugar().Warnw("attendance marks skipped for unknown students",
			"submitted", len(marks), "applied", applied)
	}
	s.persistStudents()
}

// ClearAllData empties every collection and removes the persisted slots.
func (s *DataService) ClearAllData() {
	s.repo.ClearAll()
	s.writer.Remove(SlotCourses)
	s.writer.Remove(SlotGroups)
	s.writer.Remove(SlotStudents)
}

func (s *DataService) loadSlot(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Sugar().Errorw("slot read failed, starting empty", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

func (s *DataService) persistCourses() {
	payload, err := s.repo.EncodeCourses()
	if err != nil {
		s.logger.Sugar().Errorw("encode courses failed, slot write skipped", "error", err)
		return
	}
	s.writer.Set(SlotCourses, payload)
}

func (s *DataService) persistGroups() {
	payload, err := s.repo.EncodeGroups()
	if err != nil {
		s.logger.Sugar().Errorw("encode groups failed, slot write skipped", "error", err)
		return
	}
	s.writer.Set(SlotGroups, payload)
}

func (s *DataService) persistStudents() {
	payload, err := s.repo.EncodeStudents()
	if err != nil {
		s.logger.Sugar().Errorw("encode students failed, slot write skipped", "error", err)
		return
	}
	s.writer.Set(SlotStudents, payload)
}
