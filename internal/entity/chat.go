package entity

import "time"

type ChatTurn struct {
	ID          string    `db:"id"`
	SessionID   string    `db:"session_id"`
	UserMessage string    `db:"user_message"`
	Reply       string    `db:"reply"`
	Route       string    `db:"route"`
	Intent      string    `db:"intent"`
	Score       int       `db:"score"`
	LastService string    `db:"last_service"`
	CreatedAt   time.Time `db:"created_at"`
}

type RouteCount struct {
	Route string `db:"route" json:"route"`
	Count int64  `db:"count" json:"count"`
}

type IntentCount struct {
	Intent string `db:"intent" json:"intent"`
	Count  int64  `db:"count" json:"count"`
}

type ServiceCount struct {
	Service string `db:"last_service" json:"service"`
	Count   int64  `db:"count" json:"count"`
}

type ChatAnalytics struct {
	TotalTurns    int64          `json:"total_turns"`
	TotalSessions int64          `json:"total_sessions"`
	Routes        []RouteCount   `json:"routes"`
	TopIntents    []IntentCount  `json:"top_intents"`
	TopServices   []ServiceCount `json:"top_services"`
}
