package models

const (
	EventResultCreated = "result.created"
	EventResultUpdated = "result.updated"
	EventResultDeleted = "result.deleted"
)

type ResultEvent struct {
	EventID       string        `json:"event_id"`
	EventType     string        `json:"event_type"`
	ResultID      string        `json:"result_id"`
	OverallStatus OverallStatus `json:"overall_status,omitempty"`
	Timestamp     int64         `json:"timestamp"`
}
