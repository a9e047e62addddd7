package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bargenix/bargaining-api/internal/config"
	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: create-merchant <name> <email>")
		os.Exit(1)
	}
	name := os.Args[1]
	email := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Generate the API key the merchant will authenticate with
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}
	apiKey := "brgx_" + hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	merchant := &domain.Merchant{
		Name:       name,
		Email:      email,
		APIKeyHash: string(hash),
		IsActive:   true,
	}

	repo := postgres.NewMerchantRepository(db, logger)
	if err := repo.Create(context.Background(), merchant); err != nil {
		log.Fatalf("Failed to create merchant: %v", err)
	}

	fmt.Printf("Merchant created: %s\n", merchant.ID)
	fmt.Printf("API key (store it now, it is not recoverable): %s\n", apiKey)
}
