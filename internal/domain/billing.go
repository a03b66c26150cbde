package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillableHours rounds a usage duration up to whole hours, minimum one
func BillableHours(d time.Duration) int64 {
	hours := int64(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

// CalculateCost per_hour: price * max(1, ceil(hours)); per_use: price;
// plus consumableFee * consumableQuantity
func CalculateCost(priceType PriceType, price, consumableFee, consumableQuantity float64, start, end time.Time) float64 {
	base := decimal.NewFromFloat(price)
	if priceType == PriceTypePerHour {
		base = base.Mul(decimal.NewFromInt(BillableHours(end.Sub(start))))
	}

	consumables := decimal.NewFromFloat(consumableFee).Mul(decimal.NewFromFloat(consumableQuantity))

	return base.Add(consumables).Round(2).InexactFloat64()
}
