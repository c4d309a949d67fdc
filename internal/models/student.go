package models

// Student is an enrolled individual. CourseID and GroupID are weak
// references: after a group deletion GroupID is cleared to the empty
// string and the student is kept, so dangling or empty ids are normal
// and resolve to a display placeholder, never an error.
type Student struct {
	ID         string             `json:"id"`
	Name       string             `json:"name" validate:"required"`
	Phone      string             `json:"phone"`
	Grade      string             `json:"grade,omitempty"`
	CourseID   string             `json:"courseId"`
	GroupID    string             `json:"groupId"`
	Attendance []AttendanceRecord `json:"attendance,omitempty"`
}

// Clone returns a deep copy so snapshots never alias repository state.
func (s Student) Clone() Student {
	clone := s
	if s.Attendance != nil {
		clone.Attendance = make([]AttendanceRecord, len(s.Attendance))
		copy(clone.Attendance, s.Attendance)
	}
	return clone
}

// StudentUpdate carries a partial student mutation; nil fields are
// left untouched. Attendance is not updatable here, it only changes
// through attendance marking.
type StudentUpdate struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Grade    *string `json:"grade,omitempty"`
	CourseID *string `json:"courseId,omitempty"`
	GroupID  *string `json:"groupId,omitempty"`
}

// Apply merges the update into the student.
func (u StudentUpdate) Apply(s *Student) {
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.Grade != nil {
		s.Grade = *u.Grade
	}
	if u.CourseID != nil {
		s.CourseID = *u.CourseID
	}
	if u.GroupID != nil {
		s.GroupID = *u.GroupID
	}
}
