package device

type RegisterRequest struct {
	Name     string `json:"name"`
	Location string `json:"location" binding:"required"`
}

type RegisterResponse struct {
	Device DeviceResponse `json:"device"`
	Token  string         `json:"token"`
}

const (
	ActionEnable  = "enable"
	ActionDisable = "disable"
	ActionRevoke  = "revoke"
)

type ManageRequest struct {
	DeviceID string `json:"device_id" binding:"required,uuid"`
	Action   string `json:"action" binding:"required,oneof=enable disable revoke"`
	Reason   string `json:"reason"`
}

type DeviceResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	RegisteredBy string  `json:"registered_by"`
	RevokedBy    *string `json:"revoked_by,omitempty"`
	RevokedAt    *string `json:"revoked_at,omitempty"`
	RevokeReason *string `json:"revoke_reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
