package models

// Course represents a top-level subject or program offering.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// CourseUpdate carries a partial course mutation; nil fields are left
// untouched.
type CourseUpdate struct {
	Name *string `json:"name,omitempty"`
}

// Apply merges the update into the course.
func (u CourseUpdate) Apply(c *Course) {
	if u.Name != nil {
		c.Name = *u.Name
	}
}
