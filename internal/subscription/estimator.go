package subscription

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/trznica/internal/calculator"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
)

// lineTarget adapts a subscription line item to a fee calculator target.
type lineTarget struct {
	variant  model.Variant
	quantity int
}

func (t lineTarget) Units() int { return t.quantity }
func (t lineTarget) Weight() float64 {
	return float64(t.quantity) * t.variant.Weight
}
func (t lineTarget) Amount() decimal.Decimal {
	return t.variant.Price.Mul(decimal.NewFromInt(int64(t.quantity)))
}

// RefreshEstimates updates a subscription's line item price estimates from
// current variant prices, adding the shop's fee when a fee calculator is
// configured. Line items whose variant no longer exists keep their previous
// estimate rather than failing the refresh.
func RefreshEstimates(ctx context.Context, db *sql.DB, subscriptionID int64, fee calculator.Calculator) error {
	sub, err := store.GetSubscription(ctx, db, subscriptionID)
	if err != nil {
		return fmt.Errorf("estimating subscription %d: %w", subscriptionID, err)
	}
	if sub == nil {
		return fmt.Errorf("estimating subscription %d: subscription not found", subscriptionID)
	}

	for _, li := range sub.LineItems {
		variant, err := store.GetVariant(ctx, db, li.VariantID)
		if err != nil {
			return fmt.Errorf("estimating subscription %d: %w", subscriptionID, err)
		}
		if variant == nil || variant.DeletedAt != nil {
			continue
		}

		amount := variant.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
		if fee != nil {
			if f, ok := fee.Compute(lineTarget{variant: *variant, quantity: li.Quantity}); ok {
				amount = amount.Add(f)
			}
		}
		estimate := amount.Div(decimal.NewFromInt(int64(li.Quantity))).Round(2)

		if err := store.UpdatePriceEstimate(ctx, db, li.ID, estimate); err != nil {
			return fmt.Errorf("estimating subscription %d: %w", subscriptionID, err)
		}
	}
	return nil
}
