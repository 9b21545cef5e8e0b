package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/app"
)

func main() {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
