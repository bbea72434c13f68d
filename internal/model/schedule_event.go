package model

import "time"

// ScheduleEvent maps to table schedule_events. EventID is chosen by the client.
type ScheduleEvent struct {
	EventID     string    `gorm:"type:varchar(64);primaryKey"      json:"event_id"`
	Title       string    `gorm:"type:varchar(200);not null"       json:"title"`
	StartAt     time.Time `gorm:"not null;index"                   json:"start_at"`
	EndAt       time.Time `gorm:"not null"                         json:"end_at"`
	TeacherName string    `gorm:"type:varchar(200);not null"       json:"teacher_name"`
	Subject     string    `gorm:"type:varchar(150);not null"       json:"subject"`
	Course      string    `gorm:"type:varchar(100);not null"       json:"course"`
	Section     string    `gorm:"type:varchar(4);not null"         json:"section"`
	Subtitle    string    `gorm:"type:varchar(200);not null"       json:"subtitle"`
	ComLab      string    `gorm:"column:comlab;type:varchar(100);not null" json:"comlab"`
	SoftDeleteModel
}

// TableName
func (ScheduleEvent) TableName() string { return "schedule_events" }
