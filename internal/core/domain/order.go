package domain

import (
	"errors"
	"math"
	"time"
)

// OrderStatus is derived from the order's age at read time; it is never a
// stored fact, so two reads of the same row at different wall-clock times may
// legitimately disagree.
type OrderStatus string

const (
	StatusInProcess OrderStatus = "In Process"
	StatusCompleted OrderStatus = "Completed"
)

// completionAge is the elapsed time after which an order counts as completed.
const completionAge = 120 * time.Hour

var (
	ErrRowNotFound    = errors.New("row not found")
	ErrReasonRequired = errors.New("a reason is required for this action")
	ErrClientRequired = errors.New("a client must be selected")
)

// Order is one row of the orders table. ProfitAmt is derived from Amount and
// ProfitPct and recomputed on every write that touches either.
type Order struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Client    string    `json:"client"`
	Amount    float64   `json:"amount"`
	ProfitPct float64   `json:"profit_pct"`
	ProfitAmt float64   `json:"profit_amt"`
}

// StatusAt classifies the order by its age at the given instant.
func (o Order) StatusAt(now time.Time) OrderStatus {
	if now.Sub(o.Timestamp) >= completionAge {
		return StatusCompleted
	}
	return StatusInProcess
}

// ProfitAmount computes the derived profit value, rounded to 2 decimals.
func ProfitAmount(amount, profitPct float64) float64 {
	return math.Round(amount*profitPct) / 100
}
