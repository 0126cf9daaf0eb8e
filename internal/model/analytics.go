package model

import "time"

const EventModuleAttempt = "module_attempt"

// swagger:model AnalyticsEvent
type AnalyticsEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Event     string    `json:"event"`
	ModuleID  string    `json:"moduleId"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}
