package events

import "time"

const PunchRecordedTopic = "timeclock.punch.recorded.v1"

type PunchRecordedEvent struct {
	EventType        string    `json:"event_type"`
	PunchID          string    `json:"punch_id"`
	EmployeeID       string    `json:"employee_id"`
	DeviceID         string    `json:"device_id"`
	Kind             string    `json:"kind"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Flagged          bool      `json:"flagged"`
	DetectedLocation string    `json:"detected_location,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
