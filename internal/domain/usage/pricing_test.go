package usage

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateCostKnownModel(t *testing.T) {
	cost := CalculateCost("llama-3.1-8b-instant", 1000, 1000)
	want := decimal.NewFromFloat(0.00013)
	if !cost.Equal(want) {
		t.Fatalf("cost = %s, want %s", cost, want)
	}
}

func TestCalculateCostUnknownModelUsesDefault(t *testing.T) {
	cost := CalculateCost("mystery-model", 100, 0)
	if cost.IsZero() {
		t.Fatal("expected non-zero default pricing for unknown model")
	}
}

func TestCalculateCostZeroTokens(t *testing.T) {
	if cost := CalculateCost("gemma2-9b-it", 0, 0); !cost.IsZero() {
		t.Fatalf("expected zero cost, got %s", cost)
	}
}
