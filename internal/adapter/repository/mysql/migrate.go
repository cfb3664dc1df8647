package mysql

import (
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"

	"gorm.io/gorm"
)

// Migrate creates or updates the customers and loans tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&customer.Customer{}, &loan.Loan{})
}
