package main

import (
	"encoding/json"
	"fmt"
)

// LedgerScenario drives one end-to-end settlement flow against a running
// ledger-service: set a zone rate, register a driver and a customer, grant a
// bonus, confirm an order and read back the average rating.
type LedgerScenario struct {
	baseURL    string
	token      string
	httpClient *HTTPClient
	logger     *Logger
}

func NewLedgerScenario(baseURL string, logger *Logger) *LedgerScenario {
	return &LedgerScenario{
		baseURL:    baseURL,
		httpClient: NewHTTPClient(logger),
		logger:     logger,
	}
}

func (s *LedgerScenario) headers() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + s.token,
	}
}

func (s *LedgerScenario) Login(accountId, password string) error {
	data, err := s.httpClient.DoRequest("POST", s.baseURL+LoginPath, LoginRequest{
		AccountId: accountId,
		Password:  password,
	}, map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var res LoginResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	s.token = res.Token
	s.logger.HTTP("Logged in as %s", accountId)
	return nil
}

func (s *LedgerScenario) Run(driverId, customerId string, zoneId, rate, bonus, rating, tip uint64) error {
	url := fmt.Sprintf(s.baseURL+ZoneRatePath, zoneId)
	if _, err := s.httpClient.DoRequest("POST", url, SetZoneRateRequest{Rate: rate}, s.headers()); err != nil {
		return fmt.Errorf("setting zone rate: %w", err)
	}
	s.logger.HTTP("Zone %d rate set to %d", zoneId, rate)

	if _, err := s.httpClient.DoRequest("POST", s.baseURL+DriversPath, RegisterDriverRequest{
		AccountId:  driverId,
		ExternalId: "ext-" + driverId,
		ZoneId:     zoneId,
	}, s.headers()); err != nil {
		return fmt.Errorf("registering driver: %w", err)
	}
	s.logger.HTTP("Driver %s registered in zone %d", driverId, zoneId)

	url = fmt.Sprintf(s.baseURL+DriverBonusPath, driverId)
	if _, err := s.httpClient.DoRequest("PATCH", url, SetDriverBonusRequest{Bonus: bonus}, s.headers()); err != nil {
		return fmt.Errorf("setting bonus: %w", err)
	}
	s.logger.HTTP("Driver %s bonus set to %d", driverId, bonus)

	if _, err := s.httpClient.DoRequest("POST", s.baseURL+CustomersPath, RegisterCustomerRequest{
		AccountId:  customerId,
		ExternalId: "ext-" + customerId,
	}, s.headers()); err != nil {
		return fmt.Errorf("registering customer: %w", err)
	}
	s.logger.HTTP("Customer %s registered", customerId)

	data, err := s.httpClient.DoRequest("POST", s.baseURL+ConfirmOrderPath, ConfirmOrderRequest{
		CustomerId: customerId,
		DriverId:   driverId,
		Rating:     rating,
		Tip:        tip,
	}, s.headers())
	if err != nil {
		return fmt.Errorf("confirming order: %w", err)
	}

	var settlement ConfirmOrderResponse
	if err := json.Unmarshal(data, &settlement); err != nil {
		return fmt.Errorf("decoding settlement: %w", err)
	}
	s.logger.Info("Settlement: standard=%d bonus=%d tip=%d total=%d",
		settlement.StandardPayout, settlement.Bonus, settlement.Tip, settlement.Total)

	url = fmt.Sprintf(s.baseURL+DriverRatingPath, driverId)
	data, err = s.httpClient.DoRequest("GET", url, nil, nil)
	if err != nil {
		return fmt.Errorf("reading average rating: %w", err)
	}

	var avg AverageRatingResponse
	if err := json.Unmarshal(data, &avg); err != nil {
		return fmt.Errorf("decoding rating: %w", err)
	}
	s.logger.Info("Driver %s average rating: %d (x100)", driverId, avg.AverageRating)

	return nil
}
