package domain

import "time"

// ClaimState is the wizard part of a session
type ClaimState struct {
	Step      int         `json:"step"`
	Selected  []Condition `json:"selected"`
	Documents []Document  `json:"documents"`
}

// Session is the serialisable state container owned by one browser session
type Session struct {
	ID        string     `json:"id"`
	Claim     ClaimState `json:"claim"`
	Chat      ChatState  `json:"chat"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Navigation directions
const (
	DirectionContinue = "continue"
	DirectionBack     = "back"
)

// NavigateRequest moves the wizard one step
type NavigateRequest struct {
	Direction string `json:"direction" form:"direction" binding:"required,oneof=continue back"`
}

// SubmitResponse is the acknowledgment returned by submit
type SubmitResponse struct {
	Message string `json:"message"`
}
