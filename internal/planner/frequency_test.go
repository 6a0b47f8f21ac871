package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToMonthlyAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		freq   models.Frequency
		want   string
	}{
		{"weekly", "100", models.FrequencyWeekly, "433"},
		{"biweekly", "100", models.FrequencyBiweekly, "217"},
		{"monthly", "250.50", models.FrequencyMonthly, "250.50"},
		{"quarterly", "300", models.FrequencyQuarterly, "100"},
		{"yearly", "1200", models.FrequencyYearly, "100"},
		{"unknown passes through", "42", models.Frequency("fortnightly-ish"), "42"},
		{"empty passes through", "42", models.Frequency(""), "42"},
		{"zero", "0", models.FrequencyWeekly, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToMonthlyAmount(dec(tt.amount), tt.freq)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ToMonthlyAmount(%s, %s) = %s, want %s", tt.amount, tt.freq, got, tt.want)
			}
		})
	}
}

func TestToMonthlyAmountYearlyIsTwelfth(t *testing.T) {
	for _, amount := range []string{"1", "12", "999.99", "12345.67"} {
		x := dec(amount)
		got := ToMonthlyAmount(x, models.FrequencyYearly)
		if !got.Equal(x.Div(decimal.NewFromInt(12))) {
			t.Errorf("yearly %s: got %s, want %s", amount, got, x.Div(decimal.NewFromInt(12)))
		}
	}
}
