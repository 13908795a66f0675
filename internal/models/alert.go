package models

import "time"

const (
	AlertAttendance     = "attendance"
	AlertPerformance    = "performance"
	AlertAchievement    = "achievement"
	AlertRecommendation = "recommendation"
	AlertIntervention   = "intervention"
)

type Alert struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	Type           string    `json:"type"`
	Severity       string    `json:"severity"` // low | medium | high
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ActionRequired bool      `json:"actionRequired"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AlertFilter struct {
	StudentID  string
	Type       string
	Severity   string
	UnreadOnly bool
}
