package events

import "time"

const ProfileChangeResolvedTopic = "hr.profilechange.resolved.v1"

type ProfileChangeResolvedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
