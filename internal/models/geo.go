package models

import "math"

const earthRadiusMeters = 6371000.0

// Haversine возвращает расстояние между двумя точками в метрах.
// Для масштабов площадки мероприятия точности формулы более чем достаточно.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// ETASeconds оценивает время прибытия юнита к точке в секундах.
func (u *Unit) ETASeconds(lat, lon float64) float64 {
	dist := Haversine(u.Latitude, u.Longitude, lat, lon)
	return dist / u.Capability.SpeedMPS()
}
