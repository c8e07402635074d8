package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oriently/oriently-backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Log.Error("Server failed", "error", err.Error())
		os.Exit(1)
	}
}
