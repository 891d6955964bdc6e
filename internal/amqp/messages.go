package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Op is the kind of mutation a ChangeMessage reports.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Entities that publish change notifications.
const (
	EntityEntry         = "entry"
	EntityGoal          = "goal"
	EntityEntryType     = "entry_type"
	EntityCounterparty  = "counterparty"
	EntityProject       = "project"
	EntityPaymentMethod = "payment_method"
)

// ChangeMessage tells consumers that stored data changed and derived
// reports (exports, caches) are stale. It carries identifiers only.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        Op        `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity string, op Op, id string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" || msg.Op == "" {
		return nil, fmt.Errorf("change message missing entity or op")
	}
	return &msg, nil
}
