package domain

import (
	"time"
)

type Part struct {
	PartID       string    `dynamodbav:"part_id"       json:"id"`
	SerialNumber string    `dynamodbav:"serial_number" json:"serialNumber"`
	Module       string    `dynamodbav:"module"        json:"module"`
	Quantity     int       `dynamodbav:"quantity"      json:"quantity"`
	CreatedAt    time.Time `dynamodbav:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `dynamodbav:"updated_at"    json:"updatedAt"`
}

type CreatePartInput struct {
	SerialNumber string `json:"serialNumber" binding:"required"`
	Module       string `json:"module"       binding:"required"`
	Quantity     int    `json:"quantity"     binding:"min=0"`
}

// UpdatePartInput carries a partial update; nil fields are left untouched.
type UpdatePartInput struct {
	SerialNumber *string `json:"serialNumber"`
	Module       *string `json:"module"`
	Quantity     *int    `json:"quantity"`
}
