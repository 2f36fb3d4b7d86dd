package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"subtracker/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestIntervalMonths(t *testing.T) {
	assert.Equal(t, 1, IntervalMonths(model.BillingMonthly, 1))
	assert.Equal(t, 2, IntervalMonths(model.BillingMonthly, 2))
	assert.Equal(t, 12, IntervalMonths(model.BillingYearly, 1))
	assert.Equal(t, 24, IntervalMonths(model.BillingYearly, 2))
}

func TestMyCost(t *testing.T) {
	tests := []struct {
		name string
		sub  model.Subscription
		want decimal.Decimal
	}{
		{
			name: "full mode returns total unchanged",
			sub: model.Subscription{
				TotalAmount: dec("159000.50"),
				CostMode:    model.CostModeFull,
			},
			want: dec("159000.50"),
		},
		{
			name: "split mode divides exactly",
			sub: model.Subscription{
				TotalAmount:     dec("300000"),
				CostMode:        model.CostModeSplit,
				SplitTotalUsers: 3,
				MyShare:         1,
			},
			want: dec("100000"),
		},
		{
			name: "split mode with multiple shares",
			sub: model.Subscription{
				TotalAmount:     dec("400000"),
				CostMode:        model.CostModeSplit,
				SplitTotalUsers: 4,
				MyShare:         3,
			},
			want: dec("300000"),
		},
		{
			name: "split mode without users degrades to zero",
			sub: model.Subscription{
				TotalAmount: dec("300000"),
				CostMode:    model.CostModeSplit,
				MyShare:     1,
			},
			want: decimal.Zero,
		},
		{
			name: "split mode without share degrades to zero",
			sub: model.Subscription{
				TotalAmount:     dec("300000"),
				CostMode:        model.CostModeSplit,
				SplitTotalUsers: 3,
			},
			want: decimal.Zero,
		},
		{
			name: "fixed mode returns fixed amount",
			sub: model.Subscription{
				TotalAmount: dec("13.99"),
				CostMode:    model.CostModeFixed,
				FixedAmount: dec("4.50"),
			},
			want: dec("4.50"),
		},
		{
			name: "fixed mode without amount degrades to zero",
			sub: model.Subscription{
				TotalAmount: dec("13.99"),
				CostMode:    model.CostModeFixed,
			},
			want: decimal.Zero,
		},
		{
			name: "unknown mode degrades to zero",
			sub: model.Subscription{
				TotalAmount: dec("300000"),
				CostMode:    model.CostMode("corrupted"),
			},
			want: decimal.Zero,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MyCost(tt.sub)
			assert.True(t, tt.want.Equal(got), "MyCost = %s, want %s", got, tt.want)
		})
	}
}

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name string
		sub  model.Subscription
		want decimal.Decimal
	}{
		{
			name: "yearly full normalizes to a twelfth",
			sub: model.Subscription{
				TotalAmount:     dec("1200000"),
				CostMode:        model.CostModeFull,
				BillingType:     model.BillingYearly,
				BillingInterval: 1,
			},
			want: dec("100000"),
		},
		{
			name: "monthly interval one is identity",
			sub: model.Subscription{
				TotalAmount:     dec("59000"),
				CostMode:        model.CostModeFull,
				BillingType:     model.BillingMonthly,
				BillingInterval: 1,
			},
			want: dec("59000"),
		},
		{
			name: "quarterly splits across three months",
			sub: model.Subscription{
				TotalAmount:     dec("1200000"),
				CostMode:        model.CostModeFull,
				BillingType:     model.BillingMonthly,
				BillingInterval: 3,
			},
			want: dec("400000"),
		},
		{
			name: "split then normalize keeps exact decimals",
			sub: model.Subscription{
				TotalAmount:     dec("300000"),
				CostMode:        model.CostModeSplit,
				SplitTotalUsers: 3,
				MyShare:         1,
				BillingType:     model.BillingYearly,
				BillingInterval: 1,
			},
			want: dec("8333.3333333333333333"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyCost(tt.sub)
			assert.True(t, tt.want.Equal(got), "MonthlyCost = %s, want %s", got, tt.want)
		})
	}
}

func TestConvertToVND(t *testing.T) {
	rate := dec("25000")

	vnd := ConvertToVND(dec("100000"), model.CurrencyVND, rate)
	assert.True(t, dec("100000").Equal(vnd), "VND passes through unchanged")

	usd := ConvertToVND(dec("4.50"), model.CurrencyUSD, rate)
	assert.True(t, dec("112500").Equal(usd))

	// Identity holds for VND even with a nonsense rate; the rate is never
	// applied to the display currency.
	for _, bad := range []string{"0", "-3"} {
		got := ConvertToVND(dec("100000"), model.CurrencyVND, dec(bad))
		assert.True(t, dec("100000").Equal(got), "rate %s", bad)
	}
}

func TestUSDToVNDRate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"valid rate", "25450", dec("25450")},
		{"valid decimal rate", "25450.75", dec("25450.75")},
		{"trims whitespace", "  24000 ", dec("24000")},
		{"empty falls back", "", DefaultUSDToVNDRate},
		{"non-numeric falls back", "abc", DefaultUSDToVNDRate},
		{"zero falls back", "0", DefaultUSDToVNDRate},
		{"negative falls back", "-500", DefaultUSDToVNDRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := USDToVNDRate(tt.raw)
			assert.True(t, tt.want.Equal(got), "USDToVNDRate(%q) = %s, want %s", tt.raw, got, tt.want)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency model.Currency
		want     string
	}{
		{"100000", model.CurrencyVND, "100,000"},
		{"1234567", model.CurrencyVND, "1,234,567"},
		{"950", model.CurrencyVND, "950"},
		{"0", model.CurrencyVND, "0"},
		{"1234567.4", model.CurrencyVND, "1,234,567"},
		{"12.5", model.CurrencyUSD, "12.50"},
		{"1234.567", model.CurrencyUSD, "1,234.57"},
		{"0.125", model.CurrencyUSD, "0.12"}, // half rounds to even
		{"-4500.5", model.CurrencyUSD, "-4,500.50"},
		{"-100000", model.CurrencyVND, "-100,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(dec(tt.amount), tt.currency),
			"FormatMoney(%s, %s)", tt.amount, tt.currency)
	}
}

// Converting each amount before summing must equal converting after: the
// aggregate total cannot depend on evaluation order.
func TestConversionDistributesOverSum(t *testing.T) {
	rate := dec("25450")
	usdAmounts := []decimal.Decimal{dec("4.50"), dec("13.99"), dec("0.99")}

	sumThenConvert := decimal.Zero
	for _, a := range usdAmounts {
		sumThenConvert = sumThenConvert.Add(a)
	}
	sumThenConvert = ConvertToVND(sumThenConvert, model.CurrencyUSD, rate)

	convertThenSum := decimal.Zero
	for _, a := range usdAmounts {
		convertThenSum = convertThenSum.Add(ConvertToVND(a, model.CurrencyUSD, rate))
	}

	assert.True(t, sumThenConvert.Equal(convertThenSum),
		"sum-then-convert %s != convert-then-sum %s", sumThenConvert, convertThenSum)
}
