package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateCreate is the input for persisting a conversion rate.
type RateCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	From   string
	To     string
	Rate   decimal.Decimal
}

// RateUpdate replaces the rate value of an existing pair.
type RateUpdate struct {
	Rate decimal.Decimal
}

// RateRead is the read-optimized conversion-rate projection.
type RateRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	From      string
	To        string
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
