package model

import (
	"time"

	"github.com/deppfellow/netcafe/internal/database"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Billing is one usage session of a computer. It stays open (unchecked)
// until EndTime is set at checkout.
type Billing struct {
	ID         int             `json:"id"`
	ComputerID int16           `json:"computer_id"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    *time.Time      `json:"end_time,omitempty"`
	UsageCost  decimal.Decimal `json:"usage_cost"`
}

// IsOpen reports whether the session has not been checked out yet.
func (b Billing) IsOpen() bool {
	return b.EndTime == nil
}

// BillingFromRow reads billingid, computerid, starttime, endtime and usagecost.
// A NULL usagecost (open session) reads as zero.
func BillingFromRow(row database.Row) (Billing, error) {
	id, err := row.Int("BillingID")
	if err != nil {
		return Billing{}, err
	}

	computerID, err := row.Int16("ComputerID")
	if err != nil {
		return Billing{}, err
	}

	start, err := row.Time("StartTime")
	if err != nil {
		return Billing{}, err
	}

	end, err := row.NullTime("EndTime")
	if err != nil {
		return Billing{}, err
	}

	cost, err := row.Decimal("UsageCost")
	if err != nil {
		return Billing{}, err
	}

	return Billing{
		ID:         id,
		ComputerID: computerID,
		StartTime:  start,
		EndTime:    end,
		UsageCost:  cost,
	}, nil
}

// Bill is the checkout summary of a billing.
type Bill struct {
	Billing   Billing         `json:"billing"`
	Lines     []FoodDetail    `json:"lines"`
	FoodTotal decimal.Decimal `json:"food_total"`
	Total     decimal.Decimal `json:"total"`
}

// NewBill sums the order lines and the usage cost.
func NewBill(billing Billing, lines []FoodDetail) Bill {
	foodTotal := lo.Reduce(lines, func(sum decimal.Decimal, line FoodDetail, _ int) decimal.Decimal {
		return sum.Add(line.LineTotal())
	}, decimal.Zero)

	if lines == nil {
		lines = []FoodDetail{}
	}

	return Bill{
		Billing:   billing,
		Lines:     lines,
		FoodTotal: foodTotal,
		Total:     billing.UsageCost.Add(foodTotal),
	}
}
