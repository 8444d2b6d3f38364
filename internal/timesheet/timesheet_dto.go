package timesheet

// Actor is the authenticated back-office identity performing a
// timesheet operation, as extracted from the admin token.
type Actor struct {
	ID        string
	Role      string
	Locations []string
}

type Query struct {
	Search string
	Limit  int
	Offset int
	SortBy string
	Order  string
}

type CellResponse struct {
	Time             string `json:"time,omitempty"`
	Image            string `json:"image,omitempty"`
	Where            string `json:"where,omitempty"`
	DetectedLocation string `json:"detectedLocation,omitempty"`
	Source           string `json:"source,omitempty"`
}

type RowResponse struct {
	Date         string       `json:"date"`
	ClockIn      CellResponse `json:"clockIn"`
	BreakIn      CellResponse `json:"breakIn"`
	BreakOut     CellResponse `json:"breakOut"`
	ClockOut     CellResponse `json:"clockOut"`
	BreakMinutes int          `json:"breakMinutes"`
	TotalMinutes *int         `json:"totalMinutes"`
	BreakHours   string       `json:"breakHours"`
	TotalHours   string       `json:"totalHours"`
}

type ListResponse struct {
	Timesheets []RowResponse `json:"timesheets"`
	Total      int64         `json:"total"`
}

type EditRequest struct {
	Date     string `json:"date" binding:"required"`
	ClockIn  string `json:"clockIn"`
	BreakIn  string `json:"breakIn"`
	BreakOut string `json:"breakOut"`
	ClockOut string `json:"clockOut"`
}

type EditResponse struct {
	Success bool `json:"success"`
}

func mapToRowResponse(r Row) RowResponse {
	return RowResponse{
		Date:         r.Date,
		ClockIn:      mapToCellResponse(r.ClockIn),
		BreakIn:      mapToCellResponse(r.BreakIn),
		BreakOut:     mapToCellResponse(r.BreakOut),
		ClockOut:     mapToCellResponse(r.ClockOut),
		BreakMinutes: r.BreakMinutes,
		TotalMinutes: r.TotalMinutes,
		BreakHours:   RenderDuration(r.BreakMinutes),
		TotalHours:   RenderTotal(r.TotalMinutes),
	}
}

func mapToCellResponse(c Cell) CellResponse {
	return CellResponse{
		Time:             c.Time,
		Image:            c.Image,
		Where:            c.Where,
		DetectedLocation: c.Detected,
		Source:           c.Source,
	}
}
