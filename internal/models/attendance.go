package models

// AttendanceRecord marks one date's presence for a student. Dates use
// ISO YYYY-MM-DD, so lexicographic order is chronological order. A
// student's attendance list holds at most one record per date.
type AttendanceRecord struct {
	Date    string `json:"date"`
	Present bool   `json:"present"`
}

// AttendanceMark is one entry of a batch attendance submission.
type AttendanceMark struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Present   bool   `json:"present"`
}
