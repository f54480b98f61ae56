package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"courier-ledger/internal/config"
	"courier-ledger/internal/ledger-service/adapters/driven/bm"
	"courier-ledger/internal/ledger-service/adapters/driven/db"
	"courier-ledger/internal/ledger-service/adapters/driven/sink"
	"courier-ledger/internal/ledger-service/adapters/driver/myhttp/handle"
	"courier-ledger/internal/ledger-service/adapters/driver/myhttp/middleware"
	"courier-ledger/internal/ledger-service/adapters/driver/myhttp/ws"
	"courier-ledger/internal/ledger-service/core/ports"
	"courier-ledger/internal/ledger-service/core/services"
	"courier-ledger/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IEventSink
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
	wg     sync.WaitGroup
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	s := &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}

	return s
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	// Initialize database connection
	db, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	mylog.Info("Successful database connection")

	// Initialize RabbitMQ connection
	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("Successful message broker connection")

	// Configure routes and handlers
	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.LedgerServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.LedgerServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	s.wg.Wait()

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires the core to its sinks and registers the operation routes.
func (s *Server) Configure() {
	// event stream sinks
	eventRepo := db.NewEventRepo(s.db)
	dispatcher := ws.NewDispatcher(s.mylog)
	eventSink := sink.NewMulti(s.mb, eventRepo, dispatcher)

	// core
	guard := services.NewAuthGuard(s.cfg.App)
	ledgerService := services.NewLedgerService(s.mylog, guard, eventSink)

	// handlers
	ledgerHandler := handle.NewLedgerHandler(ledgerService, eventRepo, s.mylog)
	authHandler := handle.NewAuthHandler(s.cfg.App, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// auth
	s.mux.Handle("POST /auth/login", authHandler.Login())

	// zone rate table
	s.mux.Handle("POST /zones/{zone_id}/rate", authMiddleware.Wrap(ledgerHandler.SetZoneRate()))
	s.mux.Handle("GET /zones/{zone_id}/rate", ledgerHandler.GetRate())

	// driver registry
	s.mux.Handle("POST /drivers", authMiddleware.Wrap(ledgerHandler.RegisterDriver()))
	s.mux.Handle("PATCH /drivers/{driver_id}/status", authMiddleware.Wrap(ledgerHandler.UpdateDriverStatus()))
	s.mux.Handle("DELETE /drivers/{driver_id}", authMiddleware.Wrap(ledgerHandler.DeRegisterDriver()))
	s.mux.Handle("PATCH /drivers/{driver_id}/zone", authMiddleware.Wrap(ledgerHandler.UpdateDriverZone()))
	s.mux.Handle("PATCH /drivers/{driver_id}/bonus", authMiddleware.Wrap(ledgerHandler.SetDriverBonus()))
	s.mux.Handle("GET /drivers/{driver_id}/rating", ledgerHandler.GetAverageRating())
	s.mux.Handle("GET /drivers/{driver_id}/events", ledgerHandler.ListDriverEvents())

	// customer registry
	s.mux.Handle("POST /customers", authMiddleware.Wrap(ledgerHandler.RegisterCustomer()))

	// order settlement
	s.mux.Handle("POST /orders/confirm", authMiddleware.Wrap(ledgerHandler.ConfirmOrder()))

	// observers
	s.mux.Handle("/ws/events", dispatcher.SubscribeHandler())

	// health
	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.IsAlive(); err != nil {
			handle.JsonError(w, http.StatusServiceUnavailable, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
