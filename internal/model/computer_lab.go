package model

// ComputerLab maps to table computer_labs.
type ComputerLab struct {
	LabID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lab_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Room         string `gorm:"type:varchar(50);not null"                      json:"room"`
	ComputerSets int    `gorm:"not null;default:0"                             json:"computer_sets"`
	SoftDeleteModel
}

// TableName
func (ComputerLab) TableName() string { return "computer_labs" }
