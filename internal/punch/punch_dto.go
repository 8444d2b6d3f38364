package punch

type LoginRequest struct {
	Pin string   `json:"pin" binding:"required,len=4,numeric"`
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type EmployeeSnapshot struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type LoginResponse struct {
	Employee         EmployeeSnapshot `json:"employee"`
	Punches          []PunchResponse  `json:"punches"`
	Stage            string           `json:"stage"`
	GeofenceWarning  bool             `json:"geofenceWarning"`
	DetectedLocation string           `json:"detectedLocation,omitempty"`
}

type ClockRequest struct {
	Type     string   `json:"type" binding:"required,punchkind"`
	ImageURL string   `json:"imageUrl"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type ClockResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Flag    bool   `json:"flag"`
}

type PunchResponse struct {
	ID               string `json:"id"`
	Kind             string `json:"type"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	ImageURL         string `json:"imageUrl,omitempty"`
	Where            string `json:"where,omitempty"`
	Flagged          bool   `json:"flag"`
	DetectedLocation string `json:"detectedLocation,omitempty"`
	Source           string `json:"source,omitempty"`
}

func mapToPunchResponse(e PunchEvent) PunchResponse {
	return PunchResponse{
		ID:               e.ID.String(),
		Kind:             e.Kind,
		Date:             e.Date,
		Time:             e.Time,
		ImageURL:         e.ImageURL,
		Where:            e.Where,
		Flagged:          e.Flagged,
		DetectedLocation: e.DetectedLocation,
		Source:           e.Source,
	}
}
