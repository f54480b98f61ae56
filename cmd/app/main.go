package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"courier-ledger/internal/config"
	ledgerservice "courier-ledger/internal/ledger-service"
	"courier-ledger/internal/mylogger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: app ledger-service")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	switch os.Args[1] {
	case "ledger-service":
		if err := ledgerservice.Execute(context.Background(), mylog, cfg); err != nil {
			mylog.Error("ledger-service exited with error", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("unknown service: %s\n", os.Args[1])
		os.Exit(1)
	}
}
