package finance

// ApplyDiscount returns the price after a percentage coupon, rounded to
// cents. A 10% coupon on 29.90 yields 26.91.
func ApplyDiscount(price float64, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return roundCents(price)
	}
	if discountPercent >= 100 {
		return 0
	}
	return roundCents(price * (100 - discountPercent) / 100)
}
