package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Fetches an Amadeus access token with the configured credentials. Useful
// for verifying AMADEUS_API_KEY / AMADEUS_API_SECRET before deploying.
func main() {
	godotenv.Load()

	baseURL := os.Getenv("AMADEUS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}

	config := &clientcredentials.Config{
		ClientID:     os.Getenv("AMADEUS_API_KEY"),
		ClientSecret: os.Getenv("AMADEUS_API_SECRET"),
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	token, err := config.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\nExpires: %s\n\n", token.AccessToken, token.Expiry)
}
