package routing

// Fare tariffs in Philippine pesos.
const (
	tricycleBaseFare = 15.0
	tricyclePerKM    = 10.0

	jeepneyBaseFare = 12.0
	jeepneyBaseKM   = 4.0
	jeepneyPerKM    = 1.5

	vanBaseFare = 20.0
	vanBaseKM   = 5.0
	vanPerKM    = 2.0

	busBaseFare = 18.0
	busBaseKM   = 5.0
	busPerKM    = 1.8
)

// TricycleFare is a flat base plus a per-kilometer rate.
func TricycleFare(distanceKM float64) float64 {
	return round2(tricycleBaseFare + distanceKM*tricyclePerKM)
}

// JeepneyFare covers the first 4 km at base fare, then charges per kilometer.
func JeepneyFare(distanceKM float64) float64 {
	if distanceKM <= jeepneyBaseKM {
		return jeepneyBaseFare
	}
	return round2(jeepneyBaseFare + (distanceKM-jeepneyBaseKM)*jeepneyPerKM)
}

// VanFare covers the first 5 km at base fare, then charges a premium rate.
func VanFare(distanceKM float64) float64 {
	if distanceKM <= vanBaseKM {
		return vanBaseFare
	}
	return round2(vanBaseFare + (distanceKM-vanBaseKM)*vanPerKM)
}

// BusFare covers the first 5 km at base fare, then charges per kilometer.
func BusFare(distanceKM float64) float64 {
	if distanceKM <= busBaseKM {
		return busBaseFare
	}
	return round2(busBaseFare + (distanceKM-busBaseKM)*busPerKM)
}
