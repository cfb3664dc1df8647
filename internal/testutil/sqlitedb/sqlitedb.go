package sqlitedb

import (
	"fmt"
	"strings"
	"testing"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a private in-memory sqlite DB with the customers and loans
// tables. The pool is capped at one connection so every query, inside or
// outside a transaction, sees the same database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&customer.Customer{}, &loan.Loan{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
