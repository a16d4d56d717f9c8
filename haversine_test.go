package elevroute

import "testing"

func TestDistanceKMBerlinMunich(t *testing.T) {
	berlin := Node{Lat: 52.5200, Lon: 13.4050}
	munich := Node{Lat: 48.1351, Lon: 11.5820}
	d := DistanceKM(berlin, munich)
	if d < 490 || d > 520 {
		t.Errorf("DistanceKM(berlin, munich) = %.1f, want ~504km", d)
	}
}

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	n := Node{Lat: 10, Lon: 20}
	if d := DistanceKM(n, n); d != 0 {
		t.Errorf("DistanceKM(n, n) = %v, want 0", d)
	}
}
