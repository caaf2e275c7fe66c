package events

import (
	"time"
)

// RequestCreatedEvent is published after a part request and its stock
// deduction have committed. It carries a snapshot of the part so consumers
// can render the notification without a repository lookup.
type RequestCreatedEvent struct {
	EventID          string    `json:"event_id"`
	RequestID        string    `json:"request_id"`
	PartID           string    `json:"part_id"`
	PartSerialNumber string    `json:"part_serial_number"`
	PartModule       string    `json:"part_module"`
	Quantity         int       `json:"quantity"`
	Priority         string    `json:"priority"`
	Reason           string    `json:"reason"`
	Requester        string    `json:"requester"`
	ResponsibleEmail string    `json:"responsible_email"`
	RequestDate      time.Time `json:"request_date"`
	RequiredDate     time.Time `json:"required_date"`
	Timestamp        time.Time `json:"timestamp"`
}
