package events

import "time"

const ContractLifecycleTopic = "hr.contract.lifecycle.v1"

const (
	ContractCreated    = "contract_created"
	ContractRenewed    = "contract_renewed"
	ContractTerminated = "contract_terminated"
	ContractExpired    = "contract_expired"
)

type ContractLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	ContractID   string    `json:"contract_id"`
	EmployeeID   string    `json:"employee_id"`
	ContractType string    `json:"contract_type"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
