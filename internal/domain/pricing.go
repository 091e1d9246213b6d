package domain

var basePrices = map[ServiceType]float64{
	ServiceRegular:   45,
	ServiceEmergency: 50,
	ServiceBulk:      79,
}

var bagSurcharges = map[BagCount]float64{
	BagsUpTo5:    0,
	BagsUpTo10:   5,
	BagsElevenUp: 10,
}

// UrgentPickupFee is added when the customer asks for an urgent pickup
const UrgentPickupFee = 15

// CalculatePrice returns base + bag surcharge + urgent fee.
// Unknown service types are priced as regular, unknown bag counts add nothing.
func CalculatePrice(serviceType ServiceType, bagCount BagCount, urgent bool) float64 {
	base, ok := basePrices[serviceType]
	if !ok {
		base = basePrices[ServiceRegular]
	}

	price := base + bagSurcharges[bagCount]
	if urgent {
		price += UrgentPickupFee
	}
	return price
}

// ToMinorUnits converts a price to cents, rounding half away from zero
func ToMinorUnits(price float64) int64 {
	if price < 0 {
		return -int64(-price*100 + 0.5)
	}
	return int64(price*100 + 0.5)
}

// FromMinorUnits converts cents back to a price
func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
