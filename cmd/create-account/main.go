package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/config"
	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository/postgres"
	"github.com/ParsimonyGit/shipstation-integration/internal/service"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-account/main.go <account-name> <hub-api-key> <hub-api-secret>")
		fmt.Println("Example: go run cmd/create-account/main.go \"Main Account\" \"ss-key\" \"ss-secret\"")
		os.Exit(1)
	}

	accountName := os.Args[1]
	apiKey := os.Args[2]
	apiSecret := os.Args[3]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Reject bad credentials before they land in the database.
	client := service.DefaultHubClientFactory(logger)(apiKey, apiSecret)
	if err := client.Validate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Hub rejected the credentials: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)
	account := &domain.AccountSettings{
		Name:      accountName,
		Enabled:   true,
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if err := repos.Accounts.Create(ctx, account); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created account %q\n", accountName)
	fmt.Println("Next: POST /v1/accounts/" + accountName + "/refresh-carriers to pull carriers and stores")
}
