package mysql

import (
	"context"

	loanDomain "credit-approval/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) ListByCustomerID(ctx context.Context, customerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListActiveByCustomerID(ctx context.Context, customerID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, loanDomain.StatusActive).
		Order("start_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Count(&n).Error
	return n, err
}
