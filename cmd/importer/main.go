package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/messaging"
	"github.com/matst80/slask-market/pkg/storage"
	"github.com/matst80/slask-market/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	input    = flag.String("in", "", "catalog file to import (.csv, .json, optionally .gz)")
	country  = flag.String("country", "ng", "catalog country")
	dataDir  = flag.String("data", "data", "data directory")
	currency = flag.String("currency", "NGN", "currency used in the summary")
)

// importCatalog reads and validates fileName and stores it for country.
func importCatalog(fileName string, ds *storage.DiskStorage) (*catalog.Snapshot, error) {
	products, err := storage.ReadProducts(fileName)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	snap, err := catalog.NewSnapshot(products)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", fileName, err)
	}
	if err := ds.SaveProducts(snap.GetAll()); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	return snap, nil
}

// unknownCodes lists category codes and storage tiers outside the known
// sets, each once in first-seen order.
func unknownCodes(products []types.Product) []string {
	var unknown []string
	seen := map[string]bool{}
	for _, p := range products {
		if !types.IsKnownCategory(p.Category) && !seen["category "+p.Category] {
			seen["category "+p.Category] = true
			unknown = append(unknown, "category "+p.Category)
		}
		if !types.IsKnownStorageTier(p.StorageTier) && !seen["storage "+p.StorageTier] {
			seen["storage "+p.StorageTier] = true
			unknown = append(unknown, "storage "+p.StorageTier)
		}
	}
	return unknown
}

func printSummary(w io.Writer, snap *catalog.Snapshot, currency string) {
	bounds := snap.PriceBounds()
	fmt.Fprintf(w, "products: %d\n", snap.Len())
	fmt.Fprintf(w, "price: %s - %s\n", types.FormatPrice(currency, bounds.Min), types.FormatPrice(currency, bounds.Max))
	counts := snap.Index().Counts(types.DefaultFilterState(bounds))
	for _, category := range slices.Sorted(maps.Keys(counts.Categories)) {
		fmt.Fprintf(w, "  %s: %d\n", category, counts.Categories[category])
	}
}

func notify(url, country string, change messaging.CatalogChange) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	defer conn.Close()
	return messaging.PublishCatalogChange(conn, country, change)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	flag.Parse()
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	ds := storage.NewDiskStorage(*country, *dataDir)
	snap, err := importCatalog(*input, ds)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	for _, code := range unknownCodes(snap.GetAll()) {
		log.Printf("Warning: unknown %q", code)
	}
	printSummary(os.Stdout, snap, *currency)

	if url, ok := os.LookupEnv("RABBIT_URL"); ok && url != "" {
		err := notify(url, *country, messaging.CatalogChange{
			File:      ds.ProductsFileName(),
			Products:  snap.Len(),
			Published: time.Now(),
		})
		if err != nil {
			log.Fatalf("Failed to publish catalog change: %v", err)
		}
		log.Printf("Published catalog change to %s_%s", *country, messaging.CatalogChanged)
	}
}
