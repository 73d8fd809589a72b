package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"pos-service/internal/auth"
	"pos-service/internal/model"
	"pos-service/pkg/database"
	"pos-service/pkg/notify"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and runs the service's
// migrations against it. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	// A single connection keeps the shared in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// captureNotifier records published stock events and signals each publish so
// tests can wait for the asynchronous broadcast.
type captureNotifier struct {
	mu        sync.Mutex
	events    []notify.StockEvent
	published chan struct{}
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{published: make(chan struct{}, 8)}
}

func (n *captureNotifier) Publish(_ context.Context, events []notify.StockEvent) error {
	n.mu.Lock()
	n.events = append(n.events, events...)
	n.mu.Unlock()
	n.published <- struct{}{}
	return nil
}

func (n *captureNotifier) Close() error { return nil }

func (n *captureNotifier) wait(t *testing.T) []notify.StockEvent {
	t.Helper()
	select {
	case <-n.published:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stock events")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.StockEvent, len(n.events))
	copy(out, n.events)
	return out
}

func storeIDRef(id uint) *uint { return &id }

func testClaims(role auth.Role, employeeID uint, storeID *uint) auth.Claims {
	return auth.Claims{
		EmployeeID:  employeeID,
		Email:       "test@example.com",
		Role:        role,
		StoreID:     storeID,
		Permissions: auth.DefaultPermissions(role),
	}
}

func seedStore(t *testing.T, db *gorm.DB) model.Store {
	t.Helper()
	store := model.Store{Name: "Downtown", Address: "1 Main St"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return store
}

func seedCustomer(t *testing.T, db *gorm.DB) model.Customer {
	t.Helper()
	customer := model.Customer{FirstName: "Ada", LastName: "Lovelace"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) model.Product {
	t.Helper()
	product := model.Product{
		Name:     name,
		SKU:      fmt.Sprintf("SKU-%s-%s", strings.ReplaceAll(t.Name(), "/", "-"), name),
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func seedInventory(t *testing.T, db *gorm.DB, productID, storeID uint, quantity int) {
	t.Helper()
	inv := model.Inventory{ProductID: productID, StoreID: storeID, Quantity: quantity}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
}

func stockAt(t *testing.T, db *gorm.DB, productID, storeID uint) int {
	t.Helper()
	var inv model.Inventory
	if err := db.Where("product_id = ? AND store_id = ?", productID, storeID).First(&inv).Error; err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	return inv.Quantity
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(value).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, what string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", what, got, want)
	}
}
