package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"credit-approval/internal/domain/credit"
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/infrastructure/metrics"
	"credit-approval/internal/infrastructure/xlsx"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Age is not part of the customer workbook; imported customers get this.
const defaultAge = 30

var (
	colCustomerID    = []string{"customer id", "customer_id"}
	colLoanID        = []string{"loan id", "loan_id"}
	colFirstName     = []string{"first name", "first_name"}
	colLastName      = []string{"last name", "last_name"}
	colAge           = []string{"age"}
	colPhone         = []string{"phone number", "phone_number", "phone"}
	colIncome        = []string{"monthly salary", "monthly income", "monthly_salary", "monthly_income"}
	colApprovedLimit = []string{"approved limit", "approved_limit"}
	colCurrentDebt   = []string{"current debt", "current_debt"}
	colLoanAmount    = []string{"loan amount", "loan_amount"}
	colTenure        = []string{"tenure"}
	colInterestRate  = []string{"interest rate", "interest_rate"}
	colEMIsPaid      = []string{"emis paid on time", "emis_paid_on_time"}
	colStartDate     = []string{"date of approval", "start date", "start_date"}
	colEndDate       = []string{"end date", "end_date"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
}

type Report struct {
	AlreadyLoaded    bool `json:"already_loaded"`
	Customers        int  `json:"customers"`
	Loans            int  `json:"loans"`
	SkippedCustomers int  `json:"skipped_customers"`
	SkippedLoans     int  `json:"skipped_loans"`
}

type Usecase struct {
	customers customer.Repository
	loans     loan.Repository
	now       func() time.Time
}

type Option func(*Usecase)

// WithClock sets the ingestion day used to close expired loans.
func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(customers customer.Repository, loans loan.Repository, opts ...Option) *Usecase {
	u := &Usecase{customers: customers, loans: loans, now: time.Now}
	for _, o := range opts {
		o(u)
	}
	return u
}

// RunFiles loads both workbooks and ingests them.
func (u *Usecase) RunFiles(ctx context.Context, customerPath, loanPath string) (Report, error) {
	cs, err := xlsx.ReadFirstSheet(customerPath)
	if err != nil {
		return Report{}, err
	}
	ls, err := xlsx.ReadFirstSheet(loanPath)
	if err != nil {
		return Report{}, err
	}
	return u.Run(ctx, cs, ls)
}

// Run imports customers, then loans. It does nothing if any customer
// already exists. Bad rows are logged and skipped; only a missing header
// or a failing count query stops the batch.
func (u *Usecase) Run(ctx context.Context, customers, loans *xlsx.Sheet) (Report, error) {
	var rep Report
	n, err := u.customers.Count(ctx)
	if err != nil {
		return rep, err
	}
	if n > 0 {
		rep.AlreadyLoaded = true
		return rep, nil
	}

	cc, err := resolveCustomerColumns(customers)
	if err != nil {
		return rep, err
	}
	lc, err := resolveLoanColumns(loans)
	if err != nil {
		return rep, err
	}

	for i, row := range customers.Rows {
		if xlsx.Cell(row, cc.id) == "" {
			continue
		}
		c, err := cc.parse(row)
		if err == nil {
			err = u.customers.Create(ctx, c)
		}
		if err != nil {
			log.Printf("ingest: skipping customer row %d: %v", i+2, err)
			metrics.IngestedRows.WithLabelValues("customers", "skipped").Inc()
			rep.SkippedCustomers++
			continue
		}
		metrics.IngestedRows.WithLabelValues("customers", "inserted").Inc()
		rep.Customers++
	}

	today := credit.Today(u.now())
	known := map[uint64]bool{}
	for i, row := range loans.Rows {
		if xlsx.Cell(row, lc.customerID) == "" {
			continue
		}
		if err := u.ingestLoan(ctx, lc, row, today, known); err != nil {
			log.Printf("ingest: skipping loan row %d: %v", i+2, err)
			metrics.IngestedRows.WithLabelValues("loans", "skipped").Inc()
			rep.SkippedLoans++
			continue
		}
		metrics.IngestedRows.WithLabelValues("loans", "inserted").Inc()
		rep.Loans++
	}

	log.Printf("ingest: %d customers, %d loans (%d/%d rows skipped)",
		rep.Customers, rep.Loans, rep.SkippedCustomers, rep.SkippedLoans)
	return rep, nil
}

func (u *Usecase) ingestLoan(ctx context.Context, lc loanColumns, row []string, today time.Time, known map[uint64]bool) error {
	l, err := lc.parse(row, today)
	if err != nil {
		return err
	}
	if !known[l.CustomerID] {
		if _, err := u.customers.GetByID(ctx, l.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, customer.ErrNotFound) {
				return fmt.Errorf("customer %d not found for loan %d", l.CustomerID, l.ID)
			}
			return err
		}
		known[l.CustomerID] = true
	}
	return u.loans.Create(ctx, l)
}

type customerColumns struct {
	id, first, last, age, phone, income, limit, debt int
}

func resolveCustomerColumns(s *xlsx.Sheet) (customerColumns, error) {
	cc := customerColumns{age: -1, limit: -1, debt: -1}
	var err error
	need := func(dst *int, aliases []string) {
		if err != nil {
			return
		}
		col, ok := s.Column(aliases...)
		if !ok {
			err = fmt.Errorf("customer sheet %q: missing column %q", s.Name, aliases[0])
			return
		}
		*dst = col
	}
	optional := func(dst *int, aliases []string) {
		if col, ok := s.Column(aliases...); ok {
			*dst = col
		}
	}
	need(&cc.id, colCustomerID)
	need(&cc.first, colFirstName)
	need(&cc.last, colLastName)
	need(&cc.phone, colPhone)
	need(&cc.income, colIncome)
	optional(&cc.age, colAge)
	optional(&cc.limit, colApprovedLimit)
	optional(&cc.debt, colCurrentDebt)
	return cc, err
}

func (cc customerColumns) parse(row []string) (*customer.Customer, error) {
	id, err := parseID(xlsx.Cell(row, cc.id))
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	income, err := parseAmount(xlsx.Cell(row, cc.income))
	if err != nil {
		return nil, fmt.Errorf("monthly salary: %w", err)
	}
	c := &customer.Customer{
		ID:            id,
		FirstName:     xlsx.Cell(row, cc.first),
		LastName:      xlsx.Cell(row, cc.last),
		Age:           defaultAge,
		PhoneNumber:   xlsx.Cell(row, cc.phone),
		MonthlyIncome: income,
		ApprovedLimit: customer.ApprovedLimitFor(income),
	}
	if v := xlsx.Cell(row, cc.age); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("age: %w", err)
		}
		c.Age = age
	}
	if v := xlsx.Cell(row, cc.limit); v != "" {
		if c.ApprovedLimit, err = parseAmount(v); err != nil {
			return nil, fmt.Errorf("approved limit: %w", err)
		}
	}
	if v := xlsx.Cell(row, cc.debt); v != "" {
		if c.CurrentDebt, err = parseAmount(v); err != nil {
			return nil, fmt.Errorf("current debt: %w", err)
		}
	}
	return c, nil
}

type loanColumns struct {
	customerID, loanID, amount, tenure, rate, paid, start, end int
}

func resolveLoanColumns(s *xlsx.Sheet) (loanColumns, error) {
	var lc loanColumns
	for _, c := range []struct {
		dst     *int
		aliases []string
	}{
		{&lc.customerID, colCustomerID},
		{&lc.loanID, colLoanID},
		{&lc.amount, colLoanAmount},
		{&lc.tenure, colTenure},
		{&lc.rate, colInterestRate},
		{&lc.paid, colEMIsPaid},
		{&lc.start, colStartDate},
		{&lc.end, colEndDate},
	} {
		col, ok := s.Column(c.aliases...)
		if !ok {
			return lc, fmt.Errorf("loan sheet %q: missing column %q", s.Name, c.aliases[0])
		}
		*c.dst = col
	}
	return lc, nil
}

// parse builds the loan from one row. The installment in the sheet is
// ignored and recomputed from the loan terms.
func (lc loanColumns) parse(row []string, today time.Time) (*loan.Loan, error) {
	var (
		l   loan.Loan
		err error
	)
	if l.CustomerID, err = parseID(xlsx.Cell(row, lc.customerID)); err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	if l.ID, err = parseID(xlsx.Cell(row, lc.loanID)); err != nil {
		return nil, fmt.Errorf("loan id: %w", err)
	}
	if l.LoanAmount, err = parseAmount(xlsx.Cell(row, lc.amount)); err != nil || l.LoanAmount <= 0 || l.LoanAmount > loan.MaxAmount {
		return nil, fmt.Errorf("loan amount %q: must be a positive number up to %d", xlsx.Cell(row, lc.amount), int64(loan.MaxAmount))
	}
	if l.Tenure, err = parseInt(xlsx.Cell(row, lc.tenure)); err != nil || l.Tenure < 1 || l.Tenure > loan.MaxTenure {
		return nil, fmt.Errorf("tenure %q: must be 1 to %d months", xlsx.Cell(row, lc.tenure), loan.MaxTenure)
	}
	if l.InterestRate, err = parseAmount(xlsx.Cell(row, lc.rate)); err != nil || l.InterestRate < 0 {
		return nil, fmt.Errorf("interest rate %q: must be a non-negative number", xlsx.Cell(row, lc.rate))
	}
	if v := xlsx.Cell(row, lc.paid); v != "" {
		if l.EMIsPaidOnTime, err = parseInt(v); err != nil {
			return nil, fmt.Errorf("emis paid on time: %w", err)
		}
	}
	if l.StartDate, err = parseDate(xlsx.Cell(row, lc.start)); err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	if v := xlsx.Cell(row, lc.end); v != "" {
		end, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("end date: %w", err)
		}
		l.EndDate = &end
	}

	l.MonthlyInstallment = credit.Installment(l.LoanAmount, l.InterestRate, l.Tenure)
	l.Status = loan.StatusActive
	if l.EndDate != nil && credit.DayBefore(*l.EndDate, today) {
		l.Status = loan.StatusClosed
	}
	return &l, nil
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func parseInt(s string) (int, error) {
	f, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

func parseID(s string) (uint64, error) {
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%q is not a positive id", s)
	}
	return uint64(n), nil
}

// parseDate accepts Excel date serials and the common text layouts.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, err
		}
		return credit.Today(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return credit.Today(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
