package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/config"
	"github.com/ParsimonyGit/shipstation-integration/internal/repository/postgres"
	"github.com/ParsimonyGit/shipstation-integration/internal/service"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/find-sku/main.go <account-name> <sku>")
		fmt.Println("Example: go run cmd/find-sku/main.go \"Main Account\" \"SCM 8502\"")
		os.Exit(1)
	}

	accountName := os.Args[1]
	targetSKU := os.Args[2]

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

	ctx := context.Background()
	repos := postgres.NewRepositories(db, logger)

	account, err := repos.Accounts.Get(ctx, accountName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load account: %v\n", err)
		os.Exit(1)
	}

	client := service.DefaultHubClientFactory(logger)(account.APIKey, account.APISecret)

	fmt.Printf("Searching hub catalog for SKU: %s\n\n", targetSKU)

	products, err := client.ListProducts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list products: %v\n", err)
		os.Exit(1)
	}

	found := false
	for _, product := range products {
		if !strings.EqualFold(strings.TrimSpace(product.SKU), targetSKU) {
			continue
		}
		found = true
		fmt.Printf("Product ID: %d\n", product.ProductID)
		fmt.Printf("Name:       %s\n", product.Name)
		fmt.Printf("SKU:        %s\n", product.SKU)
		fmt.Printf("Weight:     %.2f oz\n", product.WeightOz)
		fmt.Printf("Active:     %t\n\n", product.Active)
	}

	if !found {
		fmt.Printf("SKU %q not found across %d products\n", targetSKU, len(products))
		os.Exit(1)
	}
}
