package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rgoodwin/housetab/internal/database"
	"github.com/rgoodwin/housetab/internal/logging"
	"github.com/rgoodwin/housetab/internal/persist"
	"github.com/rgoodwin/housetab/internal/reminder"
	"github.com/rgoodwin/housetab/internal/server"
	"github.com/rgoodwin/housetab/internal/sms"
	"github.com/rgoodwin/housetab/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("HOUSETAB_LOG_LEVEL"), os.Getenv("HOUSETAB_LOG_FORMAT"))

	port := os.Getenv("HOUSETAB_PORT")
	if port == "" {
		port = "8080"
	}

	// State lives in a single snapshot. The backend is sqlite by default;
	// HOUSETAB_STATE_FILE switches to a plain JSON file.
	var persister store.Persister
	if statePath := os.Getenv("HOUSETAB_STATE_FILE"); statePath != "" {
		persister = persist.NewFile(statePath)
		logger.Info("using file state backend", "path", statePath)
	} else {
		dbPath := os.Getenv("HOUSETAB_DB_PATH")
		if dbPath == "" {
			dbPath = "housetab.db"
		}
		db, err := database.Open(dbPath)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		persister = persist.NewSQLite(db)
		logger.Info("using sqlite state backend", "path", dbPath)
	}

	st := store.New(persister, logger.With("component", "store"))

	smsClient := sms.NewClient(
		os.Getenv("TWILIO_ACCOUNT_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_FROM"),
	)
	if !smsClient.Configured() {
		logger.Warn("Twilio credentials not set, SMS reminders disabled")
	}
	dispatcher := reminder.NewDispatcher(smsClient, logger.With("component", "reminder"))

	srv := server.New(st, dispatcher, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("HouseTab running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
