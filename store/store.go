package store

import (
	"database/sql"
	_ "embed"

	models "shop-inventory/model"

	_ "github.com/lib/pq"
)

//go:embed migrations.sql
var migrationSQL string

// PostgresBackend is a Backend that keeps the catalog in a products table.
type PostgresBackend struct {
	DB *sql.DB
}

func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresBackend{DB: db}, nil
}

// Migrate creates the products table when it does not exist.
func (s *PostgresBackend) Migrate() error {
	_, err := s.DB.Exec(migrationSQL)
	return err
}

func (s *PostgresBackend) Close() error { return s.DB.Close() }

// Load reads every product row. An empty table counts as no saved catalog.
func (s *PostgresBackend) Load() ([]models.Product, error) {
	rows, err := s.DB.Query(`SELECT sku, name, price, stock FROM products ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoCatalog
	}
	return out, nil
}

// Save replaces the table contents with products inside one transaction.
func (s *PostgresBackend) Save(products []models.Product) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.SKU, p.Name, p.Price, p.Stock); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
