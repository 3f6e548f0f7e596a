// File: cmd/geobucket/main.go
package main

import (
	"context"
	"geobucket/internal/logger"
	"os"
	"os/signal"
	"syscall"

	// Provider implementations register themselves in init()
	_ "geobucket/internal/provider"
)

func main() {
	log := logger.NewLogger()

	app, err := newApp(log)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, app)
	stop()
	os.Exit(code)
}
