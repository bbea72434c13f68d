package dto

// CourseRequest creates a course.
type CourseRequest struct {
	Course string `json:"course" binding:"required,max=100"`
}

// CourseResponse course reference record.
type CourseResponse struct {
	ID     string `json:"id"     validate:"required"`
	Course string `json:"course" validate:"required"`
}

// SubjectRequest creates a subject.
type SubjectRequest struct {
	Subject string `json:"subject" binding:"required,max=150"`
}

// SubjectResponse subject reference record.
type SubjectResponse struct {
	ID      string `json:"id"      validate:"required"`
	Subject string `json:"subject" validate:"required"`
}
