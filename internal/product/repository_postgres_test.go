package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestList_BuildsFilterClauses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "slug", "description", "inventory", "unit_price", "collection_id", "last_update"}).
		AddRow(1, "Dog Food", "dog-food", "", 10, "9.99", 2, "2025-01-01T00:00:00Z")
	mock.ExpectQuery(`collection_id = \$1 AND unit_price > \$2 ORDER BY unit_price`).
		WithArgs(2, decimal.RequireFromString("5")).
		WillReturnRows(rows)

	collectionID := 2
	gt := decimal.RequireFromString("5")
	products, err := repo.List(Filter{CollectionID: &collectionID, UnitPriceGT: &gt, OrderBy: "unit_price"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Dog Food" {
		t.Fatalf("unexpected products %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_RefusedWhenOrdered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM order_items`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	if err := repo.Delete(5); err != ErrInOrder {
		t.Fatalf("expected ErrInOrder, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_MissingProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM order_items`).WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM products`).WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
