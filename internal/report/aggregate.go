// Package report computes spending KPIs and per-category and per-month totals from
// classified transactions, and renders them for the terminal.
package report

import (
	"sort"

	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Summary holds the headline figures of a set of transactions.
type Summary struct {
	TotalExpenses decimal.Decimal // sum of debits
	TotalIncome   decimal.Decimal // sum of credits
	Net           decimal.Decimal // income minus expenses
	Debits        int
	Credits       int
}

// CategoryTotal is the debit total of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// MonthlyTotal is the debit total of one calendar month.
type MonthlyTotal struct {
	Month  string // YYYY-MM
	Amount decimal.Decimal
}

// Summarize totals expenses and income.
func Summarize(transactions []models.Transaction) Summary {
	s := Summary{TotalExpenses: decimal.Zero, TotalIncome: decimal.Zero}
	for _, tx := range transactions {
		switch {
		case tx.Direction.IsDebit():
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
			s.Debits++
		case tx.Direction.IsCredit():
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			s.Credits++
		}
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// CategoryTotals sums debits per category, largest first. Equal amounts are ordered
// by category name.
func CategoryTotals(transactions []models.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, tx := range transactions {
		if !tx.Direction.IsDebit() {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
		totals[i].Count++
	}

	sort.SliceStable(totals, func(a, b int) bool {
		if c := totals[a].Amount.Cmp(totals[b].Amount); c != 0 {
			return c > 0
		}
		return totals[a].Category < totals[b].Category
	})
	return totals
}

// MonthlyTotals sums debits per YYYY-MM month, oldest first.
func MonthlyTotals(transactions []models.Transaction) []MonthlyTotal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if !tx.Direction.IsDebit() {
			continue
		}
		month := tx.Month()
		if current, ok := sums[month]; ok {
			sums[month] = current.Add(tx.Amount)
		} else {
			sums[month] = tx.Amount
		}
	}

	totals := make([]MonthlyTotal, 0, len(sums))
	for month, amount := range sums {
		totals = append(totals, MonthlyTotal{Month: month, Amount: amount})
	}
	sort.Slice(totals, func(a, b int) bool { return totals[a].Month < totals[b].Month })
	return totals
}

// Share returns part as a percentage of whole, or zero when whole is zero.
func Share(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
