package services

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

const (
	dayLayout       = "2006-01-02"
	dailySeriesDays = 30
)

// Summarize computes the till position for the loaded entries. Online takings
// are reported but never counted towards the closing balance.
func Summarize(txs []models.Transaction, exps []models.Expense) dto.Summary {
	var cash, online, spent decimal.Decimal
	for _, tx := range txs {
		switch tx.PaymentMode {
		case models.PaymentCash:
			cash = cash.Add(amountOf(tx.Amount))
		case models.PaymentOnline:
			online = online.Add(amountOf(tx.Amount))
		}
	}
	for _, ex := range exps {
		spent = spent.Add(amountOf(ex.Amount))
	}
	return dto.Summary{
		CashIn:   cash.InexactFloat64(),
		OnlineIn: online.InexactFloat64(),
		Expenses: spent.InexactFloat64(),
		Closing:  cash.Sub(spent).InexactFloat64(),
	}
}

type dayBucket struct {
	cash, online, spent decimal.Decimal
}

// BuildDailySeries buckets entries by calendar day in loc and returns the most
// recent 30 days that have activity, oldest first.
func BuildDailySeries(txs []models.Transaction, exps []models.Expense, loc *time.Location) []dto.DailyPoint {
	if loc == nil {
		loc = time.Local
	}
	buckets := map[string]*dayBucket{}
	bucketFor := func(ts time.Time) *dayBucket {
		key := ts.In(loc).Format(dayLayout)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{}
			buckets[key] = b
		}
		return b
	}

	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		b := bucketFor(tx.Date)
		switch tx.PaymentMode {
		case models.PaymentCash:
			b.cash = b.cash.Add(amountOf(tx.Amount))
		case models.PaymentOnline:
			b.online = b.online.Add(amountOf(tx.Amount))
		}
	}
	for _, ex := range exps {
		if ex.Date.IsZero() {
			continue
		}
		b := bucketFor(ex.Date)
		b.spent = b.spent.Add(amountOf(ex.Amount))
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > dailySeriesDays {
		days = days[len(days)-dailySeriesDays:]
	}

	out := make([]dto.DailyPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		out = append(out, dto.DailyPoint{
			Date:     day,
			Cash:     b.cash.InexactFloat64(),
			Online:   b.online.InexactFloat64(),
			Expenses: b.spent.InexactFloat64(),
			Net:      b.cash.Sub(b.spent).InexactFloat64(),
		})
	}
	return out
}

// BuildCategoryBreakdown totals expenses per category. Rows stored before the
// category default existed are counted as misc.
func BuildCategoryBreakdown(exps []models.Expense) map[models.Category]float64 {
	totals := map[models.Category]decimal.Decimal{}
	for _, ex := range exps {
		cat := ex.Category
		if cat == "" {
			cat = models.CategoryMisc
		}
		totals[cat] = totals[cat].Add(amountOf(ex.Amount))
	}
	out := make(map[models.Category]float64, len(totals))
	for cat, total := range totals {
		out[cat] = total.InexactFloat64()
	}
	return out
}

func amountOf(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
