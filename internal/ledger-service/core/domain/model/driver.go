package model

// Driver is the registry record for one driver account. A record exists in
// the registry iff the driver is registered; there is no partially built
// record. StandardPayout is snapshotted from the zone rate table at
// registration/zone-change time and never re-read afterwards.
type Driver struct {
	AccountId         string // opaque account token, registry key
	DriverExternalId  string // off-core correlation id
	IsActive          bool
	TotalRatingPoints uint64
	RatingCount       uint64
	StandardPayout    uint64
	Bonus             uint64
	ZoneId            uint64
}

// Settlement is the payout breakdown produced when an order is confirmed.
// It is exposed to the caller and carried on the OrderConfirmed event; the
// ledger does not keep a running payout total.
type Settlement struct {
	CustomerId     string
	DriverId       string
	StandardPayout uint64
	Bonus          uint64
	Tip            uint64
	Total          uint64
	Rating         uint64
}
