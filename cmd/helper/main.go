package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	baseURL := flag.String("base_url", DefaultBaseURL, "ledger-service base URL")
	adminId := flag.String("admin_id", "acc_driver_admin", "driver-admin account id")
	password := flag.String("password", "", "driver-admin password")
	driverId := flag.String("driver_id", "drv_demo", "driver account id for the scenario")
	customerId := flag.String("customer_id", "cus_demo", "customer account id for the scenario")
	hashPassword := flag.String("hash_password", "", "print a bcrypt hash for the given password and exit")
	flag.Parse()

	logger := &Logger{}

	if *hashPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hashing password: %v", err)
		}
		fmt.Println(string(hash))
		return
	}

	if *password == "" {
		log.Fatal("password is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tail the event stream while the scenario runs
	wsURL := strings.Replace(*baseURL, "http", "ws", 1) + EventsStreamPath
	wsClient := NewWebSocketClient(ctx, logger)
	if err := wsClient.Connect(wsURL); err != nil {
		logger.Warn("event stream unavailable: %v", err)
	} else {
		defer wsClient.Close()
		go func() {
			_ = wsClient.ReadMessages(func(messageType int, payload []byte) error {
				logger.WebSocket("event: %s", string(payload))
				return nil
			})
		}()
	}

	time.Sleep(InitialConnectDelay)

	scenario := NewLedgerScenario(*baseURL, logger)
	if err := scenario.Login(*adminId, *password); err != nil {
		log.Fatalf("scenario login failed: %v", err)
	}

	// zone 1 at rate 100, bonus 20, rating 4, tip 5 -> total 125, average 400
	if err := scenario.Run(*driverId, *customerId, 1, 100, 20, 4, 5); err != nil {
		log.Fatalf("scenario failed: %v", err)
	}

	logger.Info("scenario completed")
}
