package entity

type Player struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id,omitempty"`
}
