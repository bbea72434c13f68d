package model

// Teacher roles.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Teacher maps to table teachers.
type Teacher struct {
	TeacherID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	FirstName    string `gorm:"column:firstname;type:varchar(100);not null"    json:"firstname"`
	LastName     string `gorm:"column:lastname;type:varchar(100);not null"     json:"lastname"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'teacher'"    json:"role"`
	BaseModel
}

// TableName
func (Teacher) TableName() string { return "teachers" }

// DisplayName is the first and last name joined by a space.
func (t *Teacher) DisplayName() string {
	return t.FirstName + " " + t.LastName
}
