package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBillAmount(t *testing.T) {
	tests := []struct {
		name  string
		items []BillItem
		want  string
	}{
		{"no items", nil, "0"},
		{"single item", []BillItem{{Name: "Haircut", Quantity: 2, Price: dec("100")}}, "200"},
		{
			"mixed items",
			[]BillItem{
				{Name: "Shampoo", Quantity: 3, Price: dec("49.50")},
				{Name: "Comb", Quantity: 1, Price: dec("20")},
			},
			"168.50",
		},
		{
			"currency precision is exact",
			[]BillItem{{Name: "Clip", Quantity: 3, Price: dec("0.10")}},
			"0.30",
		},
		{"free item", []BillItem{{Name: "Sample", Quantity: 5, Price: dec("0")}}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, BillAmount(tt.items).Equal(dec(tt.want)),
				"got %s, want %s", BillAmount(tt.items), tt.want)
		})
	}
}

func TestDueAmount(t *testing.T) {
	tests := []struct {
		name         string
		amount, paid string
		want         string
	}{
		{"nothing paid", "200", "0", "200"},
		{"partially paid", "200", "50", "150"},
		{"fully paid", "200", "200", "0"},
		{"overpaid clamps to zero", "200", "450", "0"},
		{"zero amount", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueAmount(dec(tt.amount), dec(tt.paid))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name        string
		amount, due string
		want        string
	}{
		{"nothing due", "200", "0", StatusPaid},
		{"partially due", "200", "150", StatusPartial},
		{"everything due", "200", "200", StatusUnpaid},
		{"zero amount bill counts as paid", "0", "0", StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(dec(tt.amount), dec(tt.due)))
		})
	}
}
