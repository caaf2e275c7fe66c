package domain

import (
	"encoding/json"
	"time"
)

// StatusPending is the state every request starts in. Later transitions are
// caller-supplied labels (Approved, Rejected, Completed, ...) and are not
// validated against a closed set.
const StatusPending = "Pending"

type Request struct {
	RequestID        string    `dynamodbav:"request_id"        json:"id"`
	PartID           string    `dynamodbav:"part_id"           json:"partId"`
	Quantity         int       `dynamodbav:"quantity"          json:"quantity"`
	RequestDate      time.Time `dynamodbav:"request_date"      json:"requestDate"`
	RequiredDate     time.Time `dynamodbav:"required_date"     json:"requiredDate"`
	Priority         string    `dynamodbav:"priority"          json:"priority"`
	Reason           string    `dynamodbav:"reason"            json:"reason"`
	Status           string    `dynamodbav:"status"            json:"status"`
	Requester        string    `dynamodbav:"requester"         json:"requester"`
	ResponsibleEmail string    `dynamodbav:"responsible_email" json:"responsibleEmail"`
}

// CreateRequestInput is the POST /requests body. Quantity is a json.Number so
// the service layer can report a non-integer value as InvalidQuantity instead
// of a bind failure.
type CreateRequestInput struct {
	PartID           string      `json:"partId"`
	Quantity         json.Number `json:"quantity"`
	RequiredDate     string      `json:"requiredDate"`
	Priority         string      `json:"priority"`
	Reason           string      `json:"reason"`
	ResponsibleEmail string      `json:"responsibleEmail"`
	Requester        string      `json:"requester"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}
