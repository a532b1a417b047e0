package models

import "time"

// ChatMessage records one chat exchange: the user's message and the
// generated response. Append-only; grouped by SessionID, never updated.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36;not null" json:"session_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}
