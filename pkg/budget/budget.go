package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kasabook/kasabook/pkg/category"
	"github.com/kasabook/kasabook/pkg/money"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
)

var ErrUnknownField = errors.New("unknown budget field")

// ConflictError reports a category that already has a row in the target scope.
type ConflictError struct {
	CategoryID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("category %s already present in budget scope", e.CategoryID)
}

// Row is one stored plan cell: the budgeted figures for a category in one
// month, optionally scoped to a project. Month uses the "YYYY-MM" form.
type Row struct {
	ID         string
	CategoryID string
	ProjectID  string
	Month      string

	K1WithVat       decimal.Decimal
	K1WithoutVat    decimal.Decimal
	Vat             decimal.Decimal
	K2              decimal.Decimal
	TotalWithoutVat decimal.Decimal
	TotalWithVat    decimal.Decimal
}

// SetK1WithVat commits a gross K1 edit: net and VAT are rederived and both
// totals recomputed, so the row never persists in an inconsistent state.
func (r Row) SetK1WithVat(withVat decimal.Decimal) Row {
	split := money.SplitFromGross(withVat)
	r.K1WithVat = split.WithVat
	r.K1WithoutVat = split.WithoutVat
	r.Vat = split.Vat
	r.TotalWithVat = money.TotalWithVat(r.K1WithVat, r.K2)
	r.TotalWithoutVat = money.TotalWithoutVat(r.K1WithoutVat, r.K2)
	return r
}

// SetK1WithoutVat commits a net K1 edit: the gross and VAT figures are
// cleared rather than computed forward, so the with-VAT total falls back to
// the K2 addition alone.
func (r Row) SetK1WithoutVat(withoutVat decimal.Decimal) Row {
	split := money.SplitFromNet(withoutVat)
	r.K1WithVat = split.WithVat
	r.K1WithoutVat = split.WithoutVat
	r.Vat = split.Vat
	r.TotalWithVat = money.TotalWithVat(r.K1WithVat, r.K2)
	r.TotalWithoutVat = money.TotalWithoutVat(r.K1WithoutVat, r.K2)
	return r
}

// SetK2 commits a K2 edit; both totals move by the same delta.
func (r Row) SetK2(k2 decimal.Decimal) Row {
	r.K2 = k2
	r.TotalWithVat = money.TotalWithVat(r.K1WithVat, r.K2)
	r.TotalWithoutVat = money.TotalWithoutVat(r.K1WithoutVat, r.K2)
	return r
}

// Cell is one computed aggregate: six budgeted columns plus the two actuals
// drawn from the ledger.
type Cell struct {
	K1WithVat        decimal.Decimal
	K1WithoutVat     decimal.Decimal
	Vat              decimal.Decimal
	K2               decimal.Decimal
	TotalWithoutVat  decimal.Decimal
	TotalWithVat     decimal.Decimal
	ActualWithoutVat decimal.Decimal
	ActualWithVat    decimal.Decimal
}

func (c Cell) Add(o Cell) Cell {
	return Cell{
		K1WithVat:        c.K1WithVat.Add(o.K1WithVat),
		K1WithoutVat:     c.K1WithoutVat.Add(o.K1WithoutVat),
		Vat:              c.Vat.Add(o.Vat),
		K2:               c.K2.Add(o.K2),
		TotalWithoutVat:  c.TotalWithoutVat.Add(o.TotalWithoutVat),
		TotalWithVat:     c.TotalWithVat.Add(o.TotalWithVat),
		ActualWithoutVat: c.ActualWithoutVat.Add(o.ActualWithoutVat),
		ActualWithVat:    c.ActualWithVat.Add(o.ActualWithVat),
	}
}

func (c Cell) Sub(o Cell) Cell {
	return Cell{
		K1WithVat:        c.K1WithVat.Sub(o.K1WithVat),
		K1WithoutVat:     c.K1WithoutVat.Sub(o.K1WithoutVat),
		Vat:              c.Vat.Sub(o.Vat),
		K2:               c.K2.Sub(o.K2),
		TotalWithoutVat:  c.TotalWithoutVat.Sub(o.TotalWithoutVat),
		TotalWithVat:     c.TotalWithVat.Sub(o.TotalWithVat),
		ActualWithoutVat: c.ActualWithoutVat.Sub(o.ActualWithoutVat),
		ActualWithVat:    c.ActualWithVat.Sub(o.ActualWithVat),
	}
}

// DeviationWithVat is budgeted minus actual: positive means under budget.
func (c Cell) DeviationWithVat() decimal.Decimal {
	return c.TotalWithVat.Sub(c.ActualWithVat)
}

func (c Cell) DeviationWithoutVat() decimal.Decimal {
	return c.TotalWithoutVat.Sub(c.ActualWithoutVat)
}

// CategoryRow is the computed view of one category: a period total, per-month
// cells in multi-month mode, and child rows for a top-level category.
type CategoryRow struct {
	Category category.Category
	Type     category.CategoryType
	Cells    map[string]Cell
	Total    Cell
	Children []CategoryRow
}

// AggregateResult is the full budget view for one period and project scope.
type AggregateResult struct {
	Months  []string
	Income  []CategoryRow
	Expense []CategoryRow

	IncomeTotal  Cell
	ExpenseTotal Cell
	// NetTotal is income minus expense for every column.
	NetTotal Cell

	IncomeTotals  map[string]Cell
	ExpenseTotals map[string]Cell
	NetTotals     map[string]Cell
}

// Aggregate folds stored budget rows and ledger transactions into one view:
// per-category cells, parent rows as the sum of their children, income and
// expense subtotals, and a grand income-minus-expense total. With more than
// one month it also produces per-month columns alongside the period total.
func Aggregate(categories []category.Category, rows []Row, transactions []transaction.Transaction, months []string) AggregateResult {
	byID := category.ByID(categories)
	multiMonth := len(months) > 1

	result := AggregateResult{Months: months}
	if multiMonth {
		result.IncomeTotals = map[string]Cell{}
		result.ExpenseTotals = map[string]Cell{}
		result.NetTotals = map[string]Cell{}
	}

	for _, parent := range category.Parents(categories) {
		parentRow := CategoryRow{
			Category: parent,
			Type:     parent.Type,
		}
		if multiMonth {
			parentRow.Cells = map[string]Cell{}
		}

		children := category.Children(parent.ID, categories)
		members := children
		if len(members) == 0 {
			// A childless category aggregates its own rows directly.
			members = []category.Category{parent}
		}

		for _, child := range members {
			childRow := CategoryRow{
				Category: child,
				Type:     category.ResolveType(child, byID),
			}
			if multiMonth {
				childRow.Cells = map[string]Cell{}
				for _, month := range months {
					cell := computeCell(
						rowsFor(rows, child.ID, month),
						transactionsFor(transactions, child.ID, month),
					)
					childRow.Cells[month] = cell
					childRow.Total = childRow.Total.Add(cell)
					parentRow.Cells[month] = parentRow.Cells[month].Add(cell)
				}
			} else {
				childRow.Total = computeCell(
					rowsFor(rows, child.ID, ""),
					transactionsFor(transactions, child.ID, ""),
				)
			}
			parentRow.Total = parentRow.Total.Add(childRow.Total)
			if len(children) > 0 {
				parentRow.Children = append(parentRow.Children, childRow)
			}
		}

		switch parent.Type {
		case category.TypeIncome:
			result.Income = append(result.Income, parentRow)
			result.IncomeTotal = result.IncomeTotal.Add(parentRow.Total)
			addMonthTotals(result.IncomeTotals, parentRow)
		default:
			result.Expense = append(result.Expense, parentRow)
			result.ExpenseTotal = result.ExpenseTotal.Add(parentRow.Total)
			addMonthTotals(result.ExpenseTotals, parentRow)
		}
	}

	result.NetTotal = result.IncomeTotal.Sub(result.ExpenseTotal)
	if multiMonth {
		for _, month := range months {
			result.NetTotals[month] = result.IncomeTotals[month].Sub(result.ExpenseTotals[month])
		}
	}
	return result
}

// computeCell sums the budgeted columns over rows and the actuals over
// transactions. A transaction entered through the net path carries no VAT and
// is excluded from the with-VAT actual, keeping the two actual columns
// individually meaningful.
func computeCell(rows []Row, transactions []transaction.Transaction) Cell {
	var cell Cell
	for _, r := range rows {
		cell.K1WithVat = cell.K1WithVat.Add(r.K1WithVat)
		cell.K1WithoutVat = cell.K1WithoutVat.Add(r.K1WithoutVat)
		cell.Vat = cell.Vat.Add(r.Vat)
		cell.K2 = cell.K2.Add(r.K2)
	}
	cell.TotalWithVat = money.TotalWithVat(cell.K1WithVat, cell.K2)
	cell.TotalWithoutVat = money.TotalWithoutVat(cell.K1WithoutVat, cell.K2)

	for _, t := range transactions {
		if t.VatAmount.IsPositive() {
			cell.ActualWithVat = cell.ActualWithVat.
				Add(t.AmountWithVat.Abs()).
				Add(t.K2Amount.Abs())
		}
		cell.ActualWithoutVat = cell.ActualWithoutVat.Add(t.AmountWithoutVat.Abs())
	}
	return cell
}

func rowsFor(rows []Row, categoryID, month string) []Row {
	var matched []Row
	for _, r := range rows {
		if r.CategoryID != categoryID {
			continue
		}
		if month != "" && r.Month != month {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func transactionsFor(transactions []transaction.Transaction, categoryID, month string) []transaction.Transaction {
	var matched []transaction.Transaction
	for _, t := range transactions {
		if t.CategoryID != categoryID {
			continue
		}
		if month != "" && !strings.HasPrefix(t.PLDate.Format("2006-01-02"), month) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

func addMonthTotals(totals map[string]Cell, row CategoryRow) {
	if totals == nil {
		return
	}
	for month, cell := range row.Cells {
		totals[month] = totals[month].Add(cell)
	}
}
