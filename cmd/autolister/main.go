package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/shopswift/ebay-autolister/config"
	"github.com/shopswift/ebay-autolister/ebay"
	logpkg "github.com/shopswift/ebay-autolister/logger"
	"github.com/shopswift/ebay-autolister/services"
)

func usage() {
	fmt.Fprint(os.Stderr, `Usage: autolister [-verbose] <command> [arguments]

Commands:
  setup                                  create a starter .env and sample catalog CSV
  process [-create-listings] [-dry-run] <csv-file>
                                         bulk-create inventory items from a catalog CSV
  check <sku>                            look up one inventory item
  config                                 print the current configuration
  sample [path]                          write a sample catalog CSV (default sample_products.csv)
  ping [-marketplace id]                 authenticate against the configured environment
  condition [-grade g] <label>           show the marketplace condition for a label
`)
}

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logpkg.New(verbose || strings.EqualFold(cfg.LogLevel, "debug"), cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "setup":
		runSetup(logger)
	case "process":
		runProcess(cfg, logger, rest)
	case "check":
		runCheck(cfg, logger, rest)
	case "config":
		runConfig(cfg)
	case "sample":
		runSample(logger, rest)
	case "ping":
		runPing(cfg, logger, rest)
	case "condition":
		runCondition(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

// mustValidate stops commands that talk to the marketplace before any
// request is attempted when credentials or limits are unusable.
func mustValidate(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration validation failed: %v\n", err)
		fmt.Fprintln(os.Stderr, `check your .env file, or run "autolister setup" to create one`)
		os.Exit(1)
	}
}

func newClient(cfg *config.Config, logger *zap.Logger) *ebay.Client {
	return ebay.NewClient(ebay.Config{
		ClientID:           cfg.Ebay.ClientID,
		ClientSecret:       cfg.Ebay.ClientSecret,
		Sandbox:            cfg.Ebay.Sandbox,
		MinRequestInterval: cfg.API.RateLimitInterval,
	}, logger)
}

func listingPolicies(cfg *config.Config) ebay.ListingPolicies {
	return ebay.ListingPolicies{
		FulfillmentPolicyID: cfg.Listing.FulfillmentPolicyID,
		PaymentPolicyID:     cfg.Listing.PaymentPolicyID,
		ReturnPolicyID:      cfg.Listing.ReturnPolicyID,
	}
}

func runSetup(logger *zap.Logger) {
	fmt.Println("Setting up eBay autolister...")

	if err := config.WriteSampleEnv(".env"); err != nil {
		if errors.Is(err, os.ErrExist) {
			fmt.Println(".env already exists, leaving it in place")
		} else {
			fmt.Fprintf(os.Stderr, "failed to write .env: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println("Created .env")
	}

	catalog := services.NewCatalogService(logger)
	if err := catalog.WriteSample("sample_products.csv"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write sample CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Setup complete.")
	fmt.Println("Update .env with your eBay API credentials.")
	fmt.Println("Sample CSV created: sample_products.csv")
}

func runProcess(cfg *config.Config, logger *zap.Logger, args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	createListings := fs.Bool("create-listings", false, "create and publish an offer per created item")
	dryRun := fs.Bool("dry-run", false, "preview the catalog without making API calls")
	fs.Parse(args) //nolint:errcheck

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: autolister process [-create-listings] [-dry-run] <csv-file>")
		os.Exit(2)
	}
	csvPath := fs.Arg(0)

	if *dryRun {
		runDryRun(logger, csvPath, *createListings)
		return
	}

	mustValidate(cfg)
	client := newClient(cfg, logger)
	auto := services.NewAutolister(client, cfg.API.BatchSize, cfg.Ebay.MarketplaceID,
		cfg.Listing.Currency, listingPolicies(cfg), logger)

	fmt.Printf("Processing catalog: %s\n", csvPath)
	summary := auto.Run(context.Background(), csvPath, *createListings)

	if !summary.Success {
		fmt.Fprintf(os.Stderr, "run failed: %s\n", summary.Message)
		os.Exit(1)
	}

	fmt.Println("\nProcessing results:")
	fmt.Printf("  Inventory items created: %d\n", summary.InventoryCreated)
	fmt.Printf("  Inventory items failed:  %d\n", summary.InventoryFailed)
	if summary.Listings != nil {
		fmt.Printf("  Listings created: %d\n", summary.Listings.Created)
		fmt.Printf("  Listings failed:  %d\n", summary.Listings.Failed)
	}

	if len(summary.FailedItems) > 0 {
		fmt.Println("\nFailed items:")
		for i, item := range summary.FailedItems {
			if i == 5 {
				fmt.Printf("  ... and %d more\n", len(summary.FailedItems)-5)
				break
			}
			fmt.Printf("  %s: %s\n", item.SKU, item.Error)
		}
	}
}

func runDryRun(logger *zap.Logger, csvPath string, createListings bool) {
	fmt.Printf("Dry run, would process: %s\n", csvPath)

	catalog := services.NewCatalogService(logger)
	items, err := catalog.LoadItems(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d items to process:\n", len(items))
	for i, item := range items {
		if i == 5 {
			fmt.Printf("  ... and %d more items\n", len(items)-5)
			break
		}
		fmt.Printf("  %s: %s - $%.2f\n", item.SKU, item.Title, item.Price)
	}

	fmt.Printf("Would create inventory items: %s\n", yesNo(len(items) > 0))
	fmt.Printf("Would create listings: %s\n", yesNo(createListings))
}

func runCheck(cfg *config.Config, logger *zap.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: autolister check <sku>")
		os.Exit(2)
	}
	sku := args[0]

	mustValidate(cfg)
	client := newClient(cfg, logger)
	inventory := services.NewInventoryService(client, cfg.API.BatchSize, logger)

	fmt.Printf("Checking inventory item: %s\n", sku)

	record, err := inventory.Get(context.Background(), sku)
	if err != nil {
		var apiErr *ebay.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			fmt.Println("Item not found.")
		} else {
			fmt.Fprintf(os.Stderr, "check failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("Item found:")
	if record.Product != nil {
		fmt.Printf("  Title: %s\n", record.Product.Title)
	}
	fmt.Printf("  Condition: %s\n", record.Condition)
	if record.Availability != nil && record.Availability.ShipToLocationAvailability != nil {
		fmt.Printf("  Quantity: %d\n", record.Availability.ShipToLocationAvailability.Quantity)
	}
	if record.Product != nil && len(record.Product.ImageURLs) > 0 {
		fmt.Printf("  Images: %d attached\n", len(record.Product.ImageURLs))
	}
}

func runConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Printf("  Environment:  %s\n", cfg.Ebay.Environment())
	fmt.Printf("  API base URL: %s\n", cfg.Ebay.APIBaseURL())
	fmt.Printf("  Marketplace:  %s\n", cfg.Ebay.MarketplaceID)
	fmt.Printf("  Rate limit:   %s between requests\n", cfg.API.RateLimitInterval)
	fmt.Printf("  Batch size:   %d items per request\n", cfg.API.BatchSize)
	fmt.Printf("  Max retries:  %d\n", cfg.API.MaxRetries)
	fmt.Printf("  Currency:     %s\n", cfg.Listing.Currency)
	fmt.Printf("  Log level:    %s\n", cfg.LogLevel)
	fmt.Printf("  Log file:     %s\n", cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\nWarning: configuration incomplete: %v\n", err)
	}
}

func runSample(logger *zap.Logger, args []string) {
	output := "sample_products.csv"
	if len(args) >= 1 {
		output = args[0]
	}

	catalog := services.NewCatalogService(logger)
	if err := catalog.WriteSample(output); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write sample CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sample CSV created: %s\n", output)
}

func runPing(cfg *config.Config, logger *zap.Logger, args []string) {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	marketplace := fs.String("marketplace", cfg.Ebay.MarketplaceID, "marketplace id")
	fs.Parse(args) //nolint:errcheck

	mustValidate(cfg)
	client := newClient(cfg, logger)

	fmt.Println("Testing eBay API connection...")
	if err := client.Authenticate(); err != nil {
		fmt.Fprintf(os.Stderr, "authentication failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Authentication successful.")
	fmt.Printf("Connected to: %s\n", client.BaseURL())
	fmt.Printf("Marketplace:  %s\n", *marketplace)
}

func runCondition(args []string) {
	fs := flag.NewFlagSet("condition", flag.ExitOnError)
	grade := fs.String("grade", "", "optional grade (PSA 1-10, A+/A/B/C)")
	fs.Parse(args) //nolint:errcheck

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: autolister condition [-grade g] <label>")
		os.Exit(2)
	}
	label := fs.Arg(0)

	fmt.Printf("Mapping condition %q with grade %q\n", label, *grade)
	fmt.Printf("  Condition:   %s\n", ebay.MapCondition(label, *grade))
	fmt.Printf("  Description: %s\n", ebay.ConditionDescription(label, *grade))

	examples := []struct{ label, grade string }{
		{"new", ""},
		{"open box", ""},
		{"used excellent", "A"},
		{"graded", "9"},
		{"seller refurbished", "B+"},
		{"for parts", ""},
	}

	fmt.Println("\nOther condition examples:")
	for _, ex := range examples {
		if strings.EqualFold(ex.label, label) {
			continue
		}
		mapped := ebay.MapCondition(ex.label, ex.grade)
		if ex.grade != "" {
			fmt.Printf("  %q (grade %s) -> %s\n", ex.label, ex.grade, mapped)
		} else {
			fmt.Printf("  %q -> %s\n", ex.label, mapped)
		}
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
