// file: internals/helpers/geo.go
package helper

import "math"

/* =========================
   Utilitas geografis
========================= */

// Radius bumi dalam meter (haversine)
const EarthRadiusMeters = 6371000.0

// HaversineDistanceMeters menghitung jarak lingkaran-besar antara dua titik
// (derajat) dan mengembalikan meter, dibulatkan 2 desimal.
func HaversineDistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Round2(EarthRadiusMeters * c)
}

// ValidateStudentLocation: jarak siswa ke titik guru + apakah masih dalam radius.
func ValidateStudentLocation(teacherLat, teacherLon, studentLat, studentLon float64, allowedRadiusMeters int) (float64, bool) {
	distance := HaversineDistanceMeters(teacherLat, teacherLon, studentLat, studentLon)
	return distance, distance <= float64(allowedRadiusMeters)
}

// Round2 membulatkan ke 2 desimal (dipakai jarak & nilai akhir).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
