package main

// With --http-addr set the shop serves a JSON API instead of the text menu:
// POST /products – Create or update a product.
// GET /products/list -  For listing all products
// DELETE /products/{sku} - Remove a product
// GET /cart/list - For listing cart products
// POST /cart/add - To add  product in cart
// POST /cart/remove - To remove product from cart
// POST /checkout/order - For a checkout

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"shop-inventory/config"
	"shop-inventory/handler"
	"shop-inventory/logger"
	"shop-inventory/menu"
	"shop-inventory/receipt"
	"shop-inventory/service"
	"shop-inventory/store"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.LogLevel, err)
		os.Exit(2)
	}
	defer log.Sync()

	// --- Store ---
	var backend store.Backend
	if cfg.DatabaseDSN != "" {
		pg, err := store.NewPostgresBackend(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("DB connection failed", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.Migrate(); err != nil {
			log.Fatal("Failed running migrations", zap.Error(err))
		}
		log.Info("Database migrations executed successfully")
		backend = pg
	} else {
		backend = store.NewFileBackend(cfg.InventoryFile)
	}

	catalog := store.NewCatalog(backend, log)
	loadCatalog(catalog, log)

	// --- Service ---
	emitter := receipt.NewFileEmitter(cfg.ReceiptDir, log)
	svc := service.NewService(catalog, emitter, log)
	var serviceInterface service.ServiceInterface = svc

	if cfg.HTTPAddr == "" {
		if err := menu.New(serviceInterface, os.Stdin, os.Stdout).Run(); err != nil {
			log.Error("menu stopped", zap.Error(err))
		}
		return
	}

	// --- Handlers ---
	h := handler.NewHandler(serviceInterface, log)

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	log.Info("Server running", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// loadCatalog loads the catalog and keeps running on failure. A failed seed
// save still leaves the default products in memory.
func loadCatalog(catalog *store.Catalog, log *zap.Logger) {
	err := catalog.Load()
	switch {
	case errors.Is(err, store.ErrPersistence):
		log.Error("default inventory was not saved, continuing with it in memory", zap.Error(err))
	case err != nil:
		log.Error("could not load inventory, continuing with an empty catalog", zap.Error(err))
	}
	log.Info("inventory loaded", zap.Int("products", catalog.Len()))
}
