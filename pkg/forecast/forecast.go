package forecast

import (
	"errors"
	"time"

	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
)

var ErrInvalidHorizon = errors.New("forecast horizon must be at least one month")

// Point is the projected state after one month offset. Income and Expense are
// that offset's projected buckets; Balance is the running balance after them.
type Point struct {
	MonthIndex int
	Date       time.Time
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Balance    decimal.Decimal
}

type Projection struct {
	Points       []Point
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetChange    decimal.Decimal
	FinalBalance decimal.Decimal
}

// Project estimates the balance over the next horizonMonths months from the
// recurring templates alone. Occurrence counts are cumulative through month i
// (weekly 30i/7k, monthly i/k, yearly one occurrence once i reaches 12k), an
// approximation rather than exact scheduling: under non-unit intervals the
// per-month delta can bunch or skip. The output always has horizonMonths+1
// points, with point zero holding the starting balance.
func Project(today time.Time, currentBalance decimal.Decimal, templates []transaction.Transaction, horizonMonths int) (Projection, error) {
	if horizonMonths < 1 {
		return Projection{}, ErrInvalidHorizon
	}

	projection := Projection{
		Points: make([]Point, 0, horizonMonths+1),
	}
	projection.Points = append(projection.Points, Point{
		MonthIndex: 0,
		Date:       today,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Balance:    currentBalance,
	})

	balance := currentBalance
	for i := 1; i <= horizonMonths; i++ {
		forecastDate := today.AddDate(0, i, 0)

		income := decimal.Zero
		expense := decimal.Zero
		for _, template := range templates {
			if !template.RecurrenceEndDate.IsZero() && forecastDate.After(template.RecurrenceEndDate) {
				continue
			}

			count := occurrences(template.RecurrenceFrequency, template.RecurrenceInterval, i)
			if count == 0 {
				continue
			}
			amount := template.CombinedMagnitude().Mul(decimal.NewFromInt(int64(count)))

			switch template.Type {
			case transaction.TypeIncome:
				income = income.Add(amount)
			case transaction.TypeExpense:
				expense = expense.Add(amount)
			}
		}

		balance = balance.Add(income).Sub(expense)
		projection.Points = append(projection.Points, Point{
			MonthIndex: i,
			Date:       forecastDate,
			Income:     income,
			Expense:    expense,
			Balance:    balance,
		})
		projection.TotalIncome = projection.TotalIncome.Add(income)
		projection.TotalExpense = projection.TotalExpense.Add(expense)
	}

	projection.FinalBalance = balance
	projection.NetChange = balance.Sub(currentBalance)
	return projection, nil
}

// occurrences is the cumulative expected count of a template within the first
// i months since its start.
func occurrences(frequency transaction.Frequency, interval, i int) int {
	if interval < 1 {
		interval = 1
	}
	switch frequency {
	case transaction.FrequencyWeekly:
		return (30 * i) / (7 * interval)
	case transaction.FrequencyMonthly:
		return i / interval
	case transaction.FrequencyYearly:
		if i >= 12*interval {
			return 1
		}
		return 0
	default:
		return 0
	}
}
