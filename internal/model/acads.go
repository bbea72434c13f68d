package model

// Course maps to table courses.
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName
func (Course) TableName() string { return "courses" }

// Subject maps to table subjects.
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName
func (Subject) TableName() string { return "subjects" }
