// Package importer handles the whole-project JSON interchange format: the
// same shape is written on export and accepted on import. Validation
// accumulates every problem it finds so the user sees one complete report,
// and nothing touches the live document until the caller commits.
package importer

// Schema is the top-level JSON structure of a project file.
type Schema struct {
	Staff          []StaffJSON         `json:"staff"`
	Roles          []RoleJSON          `json:"roles"`
	Days           []DayJSON           `json:"days"`
	Sessions       []SessionJSON       `json:"sessions"`
	Assignments    []AssignmentJSON    `json:"assignments"`
	StaffOverrides []StaffOverrideJSON `json:"staffOverrides,omitempty"`
	GridStartTime  string              `json:"gridStartTime"`
	GridEndTime    string              `json:"gridEndTime"`
}

type StaffJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"textColor"`
}

type DayJSON struct {
	ID           int    `json:"id"`
	Label        string `json:"label"`
	Date         string `json:"date,omitempty"`
	DayStartTime string `json:"dayStartTime"`
}

type SessionJSON struct {
	ID              string          `json:"id"`
	DayID           int             `json:"dayId"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"durationMinutes"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	Milestones      []MilestoneJSON `json:"milestones,omitempty"`
}

type MilestoneJSON struct {
	ID            string `json:"id"`
	OffsetMinutes int    `json:"offsetMinutes"`
	Label         string `json:"label"`
}

type AssignmentJSON struct {
	SessionID string         `json:"sessionId"`
	StaffID   string         `json:"staffId"`
	RoleID    string         `json:"roleId"`
	Note      string         `json:"note,omitempty"`
	Overrides []OverrideJSON `json:"overrides,omitempty"`
}

type OverrideJSON struct {
	ID                 string `json:"id"`
	StartOffsetMinutes int    `json:"startOffsetMinutes"`
	EndOffsetMinutes   int    `json:"endOffsetMinutes"`
	RoleID             string `json:"roleId"`
	Note               string `json:"note,omitempty"`
}

type StaffOverrideJSON struct {
	ID        string `json:"id"`
	StaffID   string `json:"staffId"`
	DayID     int    `json:"dayId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoleID    string `json:"roleId"`
	Note      string `json:"note,omitempty"`
}
