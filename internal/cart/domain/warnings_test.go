package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveWarnings_PriceChanged(t *testing.T) {
	e := entry("p", "12.00", "20", 100)
	item := CartItem{ID: "i", ProductID: "p", Quantity: 1, AcknowledgedPrice: decimal.NewNullDecimal(d("10.00"))}

	warnings := DeriveWarnings([]LineView{ComputeLineView(item, &e)}, 5)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningPriceChanged, warnings[0].Code)
	assert.Equal(t, "i", warnings[0].ItemID)
	assert.Contains(t, warnings[0].Message, "10.00")
	assert.Contains(t, warnings[0].Message, "12.00")
}

func TestDeriveWarnings_PriceUnchangedOrUnknown(t *testing.T) {
	e := entry("p", "12.00", "20", 100)
	same := CartItem{ID: "a", ProductID: "p", Quantity: 1, AcknowledgedPrice: decimal.NewNullDecimal(d("12"))}
	unknown := CartItem{ID: "b", ProductID: "p", Quantity: 1}

	lines := []LineView{ComputeLineView(same, &e), ComputeLineView(unknown, &e)}
	assert.Empty(t, DeriveWarnings(lines, 5))
}

func TestDeriveWarnings_LowStock(t *testing.T) {
	e := entry("p", "1.00", "20", 6)
	item := CartItem{ID: "i", ProductID: "p", Quantity: 2}

	warnings := DeriveWarnings([]LineView{ComputeLineView(item, &e)}, 5)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningLowStock, warnings[0].Code)

	item.Quantity = 1
	assert.Empty(t, DeriveWarnings([]LineView{ComputeLineView(item, &e)}, 5))
	assert.Empty(t, DeriveWarnings([]LineView{ComputeLineView(item, &e)}, 0))
}

func TestDeriveWarnings_SkipsBlockedLines(t *testing.T) {
	ack := decimal.NewNullDecimal(d("1.00"))
	inactive := entry("p", "9.00", "20", 1)
	inactive.Active = false
	short := entry("p", "9.00", "20", 1)
	empty := entry("p", "9.00", "20", 0)

	item := CartItem{ID: "i", ProductID: "p", Quantity: 2, AcknowledgedPrice: ack}
	lines := []LineView{
		ComputeLineView(item, nil),
		ComputeLineView(item, &inactive),
		ComputeLineView(item, &short),
		ComputeLineView(item, &empty),
	}
	assert.Empty(t, DeriveWarnings(lines, 5))
}
