package main

import "time"

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// Configuration constants for rate limiting
const (
	HTTPRequestDelay    = 200 * time.Millisecond
	InitialConnectDelay = 1 * time.Second
)

// API endpoints
const (
	DefaultBaseURL = "http://localhost:3000"

	LoginPath        = "/auth/login"
	ZoneRatePath     = "/zones/%d/rate"
	DriversPath      = "/drivers"
	DriverStatusPath = "/drivers/%s/status"
	DriverZonePath   = "/drivers/%s/zone"
	DriverBonusPath  = "/drivers/%s/bonus"
	DriverRatingPath = "/drivers/%s/rating"
	CustomersPath    = "/customers"
	ConfirmOrderPath = "/orders/confirm"
	EventsStreamPath = "/ws/events"
)
