package geokit

import "math"

const (
	// earthRadiusMeters средний радиус Земли
	earthRadiusMeters = 6371000.0

	// kmPerDegreeLat длина одного градуса широты в километрах
	kmPerDegreeLat = 111.32
)

// BBox прямоугольник широта/долгота для грубой фильтрации кандидатов
// перед точным расчётом расстояния
type BBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox строит прямоугольник вокруг центра с отступом radiusKm
// Дельта долготы корректируется на cos(широты); на полюсах (cos ~ 0)
// прямоугольник вырождается в полный диапазон долгот
func BoundingBox(lat, lon, radiusKm float64) BBox {
	latDelta := radiusKm / kmPerDegreeLat

	cosLat := math.Cos(lat * math.Pi / 180)
	lonDelta := 180.0
	if cosLat > 1e-9 {
		lonDelta = radiusKm / (kmPerDegreeLat * cosLat)
	}

	return BBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// Contains проверяет, что точка попадает в прямоугольник
func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// DistanceMeters возвращает расстояние по дуге большого круга (гаверсинус)
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const deg = math.Pi / 180

	phi1 := lat1 * deg
	phi2 := lat2 * deg
	dPhi := (lat2 - lat1) * deg
	dLambda := (lon2 - lon1) * deg

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
