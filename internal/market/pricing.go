// Package market implements the stock-driven pricing model. Prices rise as a
// port's stock falls below half capacity and fall as it rises above, clamped
// to half and double the base price.
package market

// DefaultAlpha is the price sensitivity to the stock ratio.
const DefaultAlpha = 1.0

// Price returns the current unit price for a market entry. It is pure and
// deterministic: multiplier m = 1 + alpha*(0.5 - stock/capacity), clamped to
// [0.5*basePrice, 2.0*basePrice].
func Price(stock, capacity int, basePrice float64) float64 {
	return PriceWithAlpha(stock, capacity, basePrice, DefaultAlpha)
}

// PriceWithAlpha is Price with an explicit sensitivity coefficient.
func PriceWithAlpha(stock, capacity int, basePrice, alpha float64) float64 {
	r := float64(stock) / float64(capacity)
	m := 1 + alpha*(0.5-r)
	price := basePrice * m

	minPrice := basePrice * 0.5
	maxPrice := basePrice * 2.0

	if price < minPrice {
		return minPrice
	}
	if price > maxPrice {
		return maxPrice
	}
	return price
}

// SellPrice prices a sale of quantity units using the post-sale stock level,
// so large sales realize a lower marginal price than the pre-sale quote.
func SellPrice(stock, quantity, capacity int, basePrice float64) float64 {
	return Price(stock+quantity, capacity, basePrice)
}
