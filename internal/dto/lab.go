package dto

// LabRequest create/edit body for a computer lab.
type LabRequest struct {
	Name         string `json:"name"          binding:"required,max=100"`
	Room         string `json:"room"          binding:"required,max=50"`
	ComputerSets int    `json:"computer_sets" binding:"omitempty,min=0"`
}

// LabResponse computer lab as exposed by the API.
type LabResponse struct {
	ID           string `json:"id"            validate:"required"`
	Name         string `json:"name"          validate:"required"`
	Room         string `json:"room"`
	ComputerSets int    `json:"computer_sets" validate:"gte=0"`
}

// LabListResponse wraps the lab list under "com".
type LabListResponse struct {
	Com []LabResponse `json:"com"`
}
