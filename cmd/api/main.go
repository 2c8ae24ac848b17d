package main

import (
	"context"
	"log"

	"github.com/renanmachad/test-backend-thera-consulting/internal/app/api"
)

func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := api.Run(context.Background(), cfg); err != nil {
		log.Fatalf("api exited with error: %v", err)
	}
}
