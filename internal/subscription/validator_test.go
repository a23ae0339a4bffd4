package subscription

import (
	"strings"
	"testing"
	"time"

	"github.com/erazemk/trznica/internal/model"
)

func validSubscription() model.Subscription {
	begins := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	ends := begins.AddDate(0, 1, 0)
	return model.Subscription{
		ID:            1,
		EnterpriseID:  1,
		ScheduleID:    1,
		CustomerEmail: "customer@example.com",
		BeginsAt:      begins,
		EndsAt:        &ends,
		LineItems: []model.SubscriptionLineItem{
			{VariantID: 1, Quantity: 2},
		},
	}
}

func TestValidateAcceptsValidSubscription(t *testing.T) {
	if err := Validate(validSubscription()); err != nil {
		t.Errorf("expected valid subscription, got %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Subscription)
		want   string
	}{
		{"missing shop", func(s *model.Subscription) { s.EnterpriseID = 0 }, "no shop"},
		{"missing schedule", func(s *model.Subscription) { s.ScheduleID = 0 }, "no schedule"},
		{"missing email", func(s *model.Subscription) { s.CustomerEmail = "" }, "no customer email"},
		{"missing begins_at", func(s *model.Subscription) { s.BeginsAt = time.Time{} }, "no begins_at"},
		{"no line items", func(s *model.Subscription) { s.LineItems = nil }, "no line items"},
		{"inverted range", func(s *model.Subscription) { e := s.BeginsAt.AddDate(0, 0, -1); s.EndsAt = &e }, "after begins_at"},
		{"zero quantity", func(s *model.Subscription) { s.LineItems[0].Quantity = 0 }, "non-positive quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubscription()
			tt.mutate(&sub)
			err := Validate(sub)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	err := Validate(model.Subscription{})
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"no shop", "no schedule", "no customer email", "no begins_at", "no line items"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected joined error to mention %q, got %v", want, err)
		}
	}
}

func TestValidateOpenEndedRange(t *testing.T) {
	sub := validSubscription()
	sub.EndsAt = nil
	if err := Validate(sub); err != nil {
		t.Errorf("expected open-ended subscription valid, got %v", err)
	}
}
