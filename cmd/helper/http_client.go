package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HTTPClient struct {
	client *http.Client
	logger *Logger
}

func NewHTTPClient(logger *Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (h *HTTPClient) DoRequest(method, url string, body interface{}, headers map[string]string) ([]byte, error) {
	time.Sleep(HTTPRequestDelay)

	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return data, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// Request/Response models
type LoginRequest struct {
	AccountId string `json:"account_id"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	AccountId string `json:"account_id"`
	Token     string `json:"token"`
}

type SetZoneRateRequest struct {
	Rate uint64 `json:"rate"`
}

type RegisterDriverRequest struct {
	AccountId  string `json:"account_id"`
	ExternalId string `json:"external_id"`
	ZoneId     uint64 `json:"zone_id"`
}

type SetDriverBonusRequest struct {
	Bonus uint64 `json:"bonus"`
}

type RegisterCustomerRequest struct {
	AccountId  string `json:"account_id"`
	ExternalId string `json:"external_id"`
}

type ConfirmOrderRequest struct {
	CustomerId string `json:"customer_id"`
	DriverId   string `json:"driver_id"`
	Rating     uint64 `json:"rating"`
	Tip        uint64 `json:"tip"`
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
	AverageRating uint64 `json:"average_rating"`
}
