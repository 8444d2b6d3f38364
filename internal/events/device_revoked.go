package events

import "time"

const DeviceRevokedTopic = "timeclock.device.revoked.v1"

type DeviceRevokedEvent struct {
	EventType  string    `json:"event_type"`
	DeviceID   string    `json:"device_id"`
	Location   string    `json:"location"`
	RevokedBy  string    `json:"revoked_by"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
