package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/erazemk/trznica/internal/config"
	"github.com/erazemk/trznica/internal/db"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/stock"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/subscription"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: trznica <init|sync|pack>")
		os.Exit(1)
	}

	setupLogger()

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "sync":
		cmdSync(os.Args[2:])
	case "pack":
		cmdPack(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: trznica <init|sync|pack>\n", os.Args[1])
		os.Exit(1)
	}
}

// levelRouter routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

func setupLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	handler := &levelRouter{
		stdout: slog.NewTextHandler(os.Stdout, opts),
		stderr: slog.NewTextHandler(os.Stderr, opts),
	}
	slog.SetDefault(slog.New(handler))
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "trznica.sqlite3", "path to SQLite database file")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database created: %s\n", *dbPath)
	fmt.Println("Schema initialized.")
}

func cmdSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	dbPath := fs.String("db", "", "path to SQLite database file (overrides config)")
	cfgPath := fs.String("config", "", "path to YAML config file")
	subID := fs.Int64("subscription", 0, "sync a single subscription by ID (default: all)")
	at := fs.String("at", "", "sync as of this RFC3339 time (default: now)")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	now := time.Now()
	if *at != "" {
		if now, err = time.Parse(time.RFC3339, *at); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing -at: %v\n", err)
			os.Exit(1)
		}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *subID != 0 {
		if err := subscription.Sync(ctx, database, *subID, now); err != nil {
			slog.Error("Sync failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Subscription synced", "subscription_id", *subID)
		return
	}

	ids, err := store.ListSubscriptionIDs(ctx, database)
	if err != nil {
		slog.Error("Listing subscriptions failed", "error", err)
		os.Exit(1)
	}

	if err := subscription.SyncAll(ctx, database, slog.Default(), ids, now); err != nil {
		// Per-subscription failures are already logged; the exit code is the
		// only thing left to signal.
		os.Exit(1)
	}
	slog.Info("Subscriptions synced", "count", len(ids))
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	dbPath := fs.String("db", "", "path to SQLite database file (overrides config)")
	cfgPath := fs.String("config", "", "path to YAML config file")
	orderID := fs.Int64("order", 0, "order ID to pack")
	fs.Parse(args)

	if *orderID == 0 {
		fmt.Fprintln(os.Stderr, "Error: -order is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	splitters, err := cfg.SplitterChain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	order, err := store.GetOrder(ctx, database, *orderID)
	if err != nil {
		slog.Error("Loading order failed", "error", err)
		os.Exit(1)
	}
	if order == nil {
		fmt.Fprintf(os.Stderr, "Error: order %d not found\n", *orderID)
		os.Exit(1)
	}

	locations, err := store.ListActiveStockLocations(ctx, database)
	if err != nil {
		slog.Error("Listing stock locations failed", "error", err)
		os.Exit(1)
	}

	var methods []model.ShippingMethod
	if order.EnterpriseID != nil {
		if methods, err = store.ShippingMethodsForDistributor(ctx, database, *order.EnterpriseID); err != nil {
			slog.Error("Listing shipping methods failed", "error", err)
			os.Exit(1)
		}
	}

	coordinator := &stock.Coordinator{
		Order:     *order,
		Locations: locations,
		Fill: func(locationID, variantID int64, quantity int) (int, int, error) {
			return store.FillStatus(ctx, database, locationID, variantID, quantity)
		},
		Methods: methods,
		Config:  stock.Config{Splitters: splitters},
	}

	packages, err := coordinator.Packages()
	if err != nil {
		slog.Error("Packing failed", "order_id", order.ID, "error", err)
		os.Exit(1)
	}

	for _, pkg := range packages {
		shipment := pkg.ToShipment()
		if err := store.SaveShipment(ctx, database, &shipment); err != nil {
			slog.Error("Saving shipment failed", "order_id", order.ID, "error", err)
			os.Exit(1)
		}
		slog.Info("Shipment created",
			"order_id", order.ID,
			"shipment", shipment.Number,
			"location_id", shipment.StockLocationID,
			"units", len(shipment.Units),
			"cost", shipment.Cost.String(),
		)
	}

	fmt.Printf("Packed order %s into %d shipment(s)\n", order.Number, len(packages))
}
