package form

import "time"

// LabForm adds or edits a computer lab. ID is set when editing.
type LabForm struct {
	ID           string `json:"id"`
	Name         string `json:"name"          validate:"required,max=100" msg:"Name is required" msg_max:"Name must be at most 100 characters"`
	Room         string `json:"room"          validate:"required,max=50"  msg:"Room is required" msg_max:"Room must be at most 50 characters"`
	ComputerSets int    `json:"computer_sets" validate:"gte=0"            msg:"Computer sets cannot be negative"`
}

// EventForm creates or edits a schedule event. Select fields carry the
// `choice` rule and are checked against the loaded option lists.
type EventForm struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"        validate:"required,max=200"          msg:"Title is required" msg_max:"Title must be at most 200 characters"`
	Start       time.Time `json:"start"        validate:"required"                  msg:"Start is required"`
	End         time.Time `json:"end"          validate:"required,gtfield=Start"    msg:"End must be after start"`
	TeacherName string    `json:"teacher_name" validate:"required,choice"           msg:"Please select a teacher"`
	Subject     string    `json:"subject"      validate:"required,choice"           msg:"Please select a subject"`
	Course      string    `json:"course"       validate:"required,choice"           msg:"Please select a course"`
	Section     string    `json:"section"      validate:"required,choice"           msg:"Please select a section"`
	Subtitle    string    `json:"subtitle"     validate:"max=200"                   msg:"Subtitle must be at most 200 characters"`
	ComLab      string    `json:"comlab"       validate:"required,choice"           msg:"Please select a comlab"`
}

// TeacherForm registers a teacher account.
type TeacherForm struct {
	FirstName string `json:"firstname" validate:"required,max=100" msg:"First name is required" msg_max:"First name must be at most 100 characters"`
	LastName  string `json:"lastname"  validate:"required,max=100" msg:"Last name is required"  msg_max:"Last name must be at most 100 characters"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

// CourseForm adds a course.
type CourseForm struct {
	Course string `json:"course" validate:"required,max=100" msg:"Course is required" msg_max:"Course must be at most 100 characters"`
}

// SubjectForm adds a subject.
type SubjectForm struct {
	Subject string `json:"subject" validate:"required,max=150" msg:"Subject is required" msg_max:"Subject must be at most 150 characters"`
}
