package helper

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	if d := HaversineDistanceMeters(-16.5, -68.15, -16.5, -68.15); d != 0 {
		t.Fatalf("jarak titik yang sama harus 0, dapat %v", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineDistanceMeters(-16.5, -68.15, -16.49, -68.14)
	b := HaversineDistanceMeters(-16.49, -68.14, -16.5, -68.15)
	if a != b {
		t.Fatalf("jarak harus simetris: %v != %v", a, b)
	}
	if a <= 0 {
		t.Fatalf("jarak dua titik berbeda harus > 0, dapat %v", a)
	}
}

func TestHaversineReferenceValue(t *testing.T) {
	// 0.01 derajat latitude ≈ 1.113 m (nilai referensi haversine, R=6371000)
	d := HaversineDistanceMeters(0, 0, 0.01, 0)
	if math.Abs(d-1111.95) > 2.0 {
		t.Fatalf("0.01° latitude seharusnya ≈1112m, dapat %v", d)
	}
}

func TestValidateStudentLocation(t *testing.T) {
	dist, within := ValidateStudentLocation(0, 0, 0.01, 0, 2000)
	if !within {
		t.Fatalf("1112m harus dalam radius 2000m (jarak %v)", dist)
	}
	dist, within = ValidateStudentLocation(0, 0, 0.01, 0, 100)
	if within {
		t.Fatalf("1112m tidak boleh lolos radius 100m (jarak %v)", dist)
	}
}
