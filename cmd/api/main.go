package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/adityakp-dev/Acadex/internal/app"
	"github.com/adityakp-dev/Acadex/internal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	cfg := config.LoadConfig()
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Println("shutting down...")
}
