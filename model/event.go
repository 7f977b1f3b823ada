package model

import (
	"time"

	"github.com/muhammadheryan/car-traders/constant"
)

// TradeEvent is published on every listing lifecycle change.
type TradeEvent struct {
	Event      constant.EventType `json:"event"`
	TradeID    uint64             `json:"trade_id,omitempty"`
	UserID     uint64             `json:"user_id"`
	Title      string             `json:"title,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}
