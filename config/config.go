package config

import (
	"os"

	"github.com/spf13/pflag"
)

const (
	DefaultInventoryFile = "pyshop_inventory.json"
	DefaultReceiptDir    = "."
	DefaultLogLevel      = "info"
)

type Config struct {
	InventoryFile string
	ReceiptDir    string
	DatabaseDSN   string // empty selects the JSON file backend
	HTTPAddr      string // empty runs the interactive menu
	LogLevel      string
}

// Load parses args (without the program name). Environment variables supply
// the defaults and flags override them.
func Load(args []string) (Config, error) {
	var c Config
	fs := pflag.NewFlagSet("shop", pflag.ContinueOnError)
	fs.StringVar(&c.InventoryFile, "inventory-file", GetEnv("SHOP_INVENTORY_FILE", DefaultInventoryFile), "path of the JSON catalog file")
	fs.StringVar(&c.ReceiptDir, "receipt-dir", GetEnv("SHOP_RECEIPT_DIR", DefaultReceiptDir), "directory receipts are written to")
	fs.StringVar(&c.DatabaseDSN, "database-dsn", GetEnv("SHOP_DATABASE_DSN", ""), "Postgres DSN; when set the catalog is kept in Postgres")
	fs.StringVar(&c.HTTPAddr, "http-addr", GetEnv("SHOP_HTTP_ADDR", ""), "serve the JSON API on this address instead of the text menu")
	fs.StringVar(&c.LogLevel, "log-level", GetEnv("SHOP_LOG_LEVEL", DefaultLogLevel), "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return c, nil
}

// GetEnv returns the environment variable key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
