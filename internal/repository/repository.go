package repository

import "gorm.io/gorm"

// Repository aggregates every repository.
type Repository struct {
	Teacher       TeacherRepository
	Lab           LabRepository
	Course        CourseRepository
	Subject       SubjectRepository
	ScheduleEvent ScheduleEventRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Teacher:       NewTeacherRepo(db),
		Lab:           NewLabRepo(db),
		Course:        NewCourseRepo(db),
		Subject:       NewSubjectRepo(db),
		ScheduleEvent: NewScheduleEventRepo(db),
	}
}
