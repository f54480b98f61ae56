package dto

type SetZoneRateRequest struct {
	Rate *uint64 `json:"rate"`
}

type ZoneRateResponse struct {
	ZoneId uint64 `json:"zone_id"`
	Rate   uint64 `json:"rate"`
}

type RegisterDriverRequest struct {
	AccountId  *string `json:"account_id"`
	ExternalId *string `json:"external_id"`
	ZoneId     *uint64 `json:"zone_id"`
}

type UpdateDriverStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type UpdateDriverZoneRequest struct {
	ZoneId *uint64 `json:"zone_id"`
}

type SetDriverBonusRequest struct {
	Bonus *uint64 `json:"bonus"`
}

type DriverResponse struct {
	AccountId      string `json:"account_id"`
	ExternalId     string `json:"external_id"`
	IsRegistered   bool   `json:"is_registered"`
	IsActive       bool   `json:"is_active"`
	ZoneId         uint64 `json:"zone_id"`
	StandardPayout uint64 `json:"standard_payout"`
	Bonus          uint64 `json:"bonus"`
}

type RegisterCustomerRequest struct {
	AccountId  *string `json:"account_id"`
	ExternalId *string `json:"external_id"`
}

type ConfirmOrderRequest struct {
	CustomerId *string `json:"customer_id"`
	DriverId   *string `json:"driver_id"`
	Rating     *uint64 `json:"rating"`
	Tip        *uint64 `json:"tip"`
}

type ConfirmOrderResponse struct {
	CustomerId     string `json:"customer_id"`
	DriverId       string `json:"driver_id"`
	StandardPayout uint64 `json:"standard_payout"`
	Bonus          uint64 `json:"bonus"`
	Tip            uint64 `json:"tip"`
	Total          uint64 `json:"total"`
}

type AverageRatingResponse struct {
	DriverId      string `json:"driver_id"`
	AverageRating uint64 `json:"average_rating"` // scaled by 100
}
