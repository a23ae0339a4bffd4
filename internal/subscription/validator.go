package subscription

import (
	"errors"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// Validate checks a subscription's structural integrity before it is synced
// or estimated. All problems are reported at once.
func Validate(s model.Subscription) error {
	var errs []error

	if s.EnterpriseID == 0 {
		errs = append(errs, errors.New("subscription has no shop"))
	}
	if s.ScheduleID == 0 {
		errs = append(errs, errors.New("subscription has no schedule"))
	}
	if s.CustomerEmail == "" {
		errs = append(errs, errors.New("subscription has no customer email"))
	}
	if s.BeginsAt.IsZero() {
		errs = append(errs, errors.New("subscription has no begins_at"))
	}
	if s.EndsAt != nil && !s.EndsAt.After(s.BeginsAt) {
		errs = append(errs, errors.New("subscription ends_at must be after begins_at"))
	}
	if len(s.LineItems) == 0 {
		errs = append(errs, errors.New("subscription has no line items"))
	}
	for _, li := range s.LineItems {
		if li.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("subscription line item for variant %d has non-positive quantity", li.VariantID))
		}
	}

	return errors.Join(errs...)
}
