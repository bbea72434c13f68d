package dto

// ICSImportRequest carries an iCalendar document to turn into schedule
// events. The default fields fill in whatever a VEVENT does not say.
type ICSImportRequest struct {
	Calendar    string `json:"calendar"     binding:"required"`
	TeacherName string `json:"teacher_name" binding:"max=200"`
	Subject     string `json:"subject"      binding:"max=150"`
	Course      string `json:"course"       binding:"max=100"`
	Section     string `json:"section"      binding:"max=4"`
	ComLab      string `json:"comlab"       binding:"max=100"`
}

// ICSImportSkip explains why one VEVENT (or occurrence) was not imported.
type ICSImportSkip struct {
	UID    string `json:"uid"`
	Reason string `json:"reason"`
}

// ICSImportResult summarises an import.
type ICSImportResult struct {
	Imported []string        `json:"imported"`
	Skipped  []ICSImportSkip `json:"skipped"`
}
