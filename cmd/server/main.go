package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	srv, err := server.New(*cfg)
	if err != nil {
		log.Fatalf("Failed to set up server: %v", err)
	}
	srv.Start()

	go func() {
		if err := srv.App.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	slog.Info("Instagram email signature server running", "port", cfg.Port, "mode", cfg.DeployMode)
	slog.Info("View signature at http://localhost:" + cfg.Port + "/signature")

	gracefulShutdown(srv)
}

func gracefulShutdown(srv *server.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
