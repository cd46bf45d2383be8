package store

import (
	"errors"
	"regexp"
	"testing"

	models "shop-inventory/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestPostgresLoad_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	s := &PostgresBackend{DB: db}

	rows := sqlmock.NewRows([]string{"sku", "name", "price", "stock"}).
		AddRow("SKU001", "Laptop", "999.99", 100).
		AddRow("SKU002", "Mouse", "19.99", 7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sku, name, price, stock FROM products ORDER BY sku`)).
		WillReturnRows(rows)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 || got[0].SKU != "SKU001" || got[1].Stock != 7 {
		t.Fatalf("unexpected products: %+v", got)
	}
	if !got[0].Price.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("expected price 999.99, got %s", got[0].Price)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresLoad_EmptyTableMeansNoCatalog(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresBackend{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sku, name, price, stock FROM products ORDER BY sku`)).
		WillReturnRows(sqlmock.NewRows([]string{"sku", "name", "price", "stock"}))

	if _, err := s.Load(); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresLoad_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresBackend{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sku, name, price, stock FROM products ORDER BY sku`)).
		WillReturnError(errors.New("db down"))

	if _, err := s.Load(); err == nil || errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected query error to propagate, got %v", err)
	}
}

func TestPostgresSave_ReplacesRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresBackend{DB: db}

	products := []models.Product{
		{SKU: "SKU001", Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 98},
		{SKU: "SKU002", Name: "Mouse", Price: decimal.RequireFromString("19.99"), Stock: 100},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products`)).
		WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`)).
		WithArgs("SKU001", "Laptop", decimal.RequireFromString("999.99"), 98).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`)).
		WithArgs("SKU002", "Mouse", decimal.RequireFromString("19.99"), 100).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := s.Save(products); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresSave_RollsBackOnInsertError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresBackend{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`)).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := s.Save([]models.Product{{SKU: "SKU001", Name: "Laptop", Price: decimal.NewFromInt(1), Stock: 1}})
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresMigrate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := &PostgresBackend{DB: db}

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS products`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCatalogOverPostgres_SeedsEmptyTable(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sku, name, price, stock FROM products ORDER BY sku`)).
		WillReturnRows(sqlmock.NewRows([]string{"sku", "name", "price", "stock"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO products (sku, name, price, stock) VALUES ($1,$2,$3,$4)`))
	for _, p := range DefaultProducts() {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
			WithArgs(p.SKU, p.Name, p.Price, p.Stock).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	c := NewCatalog(&PostgresBackend{DB: db}, nil)
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 10 {
		t.Fatalf("expected 10 seeded products, got %d", c.Len())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
