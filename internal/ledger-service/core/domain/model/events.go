package model

import (
	"encoding/json"
	"time"
)

// Event kinds, one per successful state transition.
const (
	EventZoneRateUpdated     = "zone_rate_updated"
	EventDriverRegistered    = "driver_registered"
	EventDriverStatusUpdated = "driver_status_updated"
	EventDriverDeRegistered  = "driver_deregistered"
	EventDriverZoneUpdated   = "driver_zone_updated"
	EventPayoutUpdated       = "payout_updated"
	EventCustomerRegistered  = "customer_registered"
	EventOrderConfirmed      = "order_confirmed"
	EventRatingUpdated       = "rating_updated"
)

// Event is the envelope appended to the notification stream after every
// successful mutation. Subject is the indexed identifier external observers
// key on (account id, or zone id rendered as a string). Data is the
// kind-specific payload below.
type Event struct {
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	EmittedAt time.Time `json:"emitted_at"`
	Data      any       `json:"data"`
}

// StoredEvent is one archived row of the stream, data kept as raw JSON.
type StoredEvent struct {
	Id        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Kind      string          `json:"kind"`
	Subject   string          `json:"subject"`
	Data      json.RawMessage `json:"data"`
}

type ZoneRateUpdated struct {
	ZoneId uint64 `json:"zone_id"`
	Rate   uint64 `json:"rate"`
}

type DriverRegistered struct {
	AccountId        string `json:"account_id"`
	DriverExternalId string `json:"driver_external_id"`
	ZoneId           uint64 `json:"zone_id"`
	StandardPayout   uint64 `json:"standard_payout"`
}

type DriverStatusUpdated struct {
	AccountId string `json:"account_id"`
	IsActive  bool   `json:"is_active"`
}

type DriverDeRegistered struct {
	AccountId string `json:"account_id"`
}

type DriverZoneUpdated struct {
	AccountId      string `json:"account_id"`
	ZoneId         uint64 `json:"zone_id"`
	StandardPayout uint64 `json:"standard_payout"`
}

type PayoutUpdated struct {
	AccountId      string `json:"account_id"`
	StandardPayout uint64 `json:"standard_payout"`
	Bonus          uint64 `json:"bonus"`
}

type CustomerRegistered struct {
	AccountId          string `json:"account_id"`
	CustomerExternalId string `json:"customer_external_id"`
}

type OrderConfirmed struct {
	CustomerId     string `json:"customer_id"`
	DriverId       string `json:"driver_id"`
	StandardPayout uint64 `json:"standard_payout"`
	Bonus          uint64 `json:"bonus"`
	Tip            uint64 `json:"tip"`
	Total          uint64 `json:"total"`
	Rating         uint64 `json:"rating"`
}

type RatingUpdated struct {
	AccountId         string `json:"account_id"`
	TotalRatingPoints uint64 `json:"total_rating_points"`
	RatingCount       uint64 `json:"rating_count"`
	AverageRating     uint64 `json:"average_rating"` // scaled by 100, truncated
}
