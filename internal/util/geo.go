package util

import "math"

const earthRadiusMiles = 3958.8

// HaversineMiles 大圆距离（英里），输入为十进制度的经纬度
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// ClampRadius 把发现半径夹到 [0, max]
func ClampRadius(radius, max float64) float64 {
	if radius < 0 {
		return 0
	}
	if radius > max {
		return max
	}
	return radius
}
