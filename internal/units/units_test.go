package units

import (
	"math"
	"testing"
)

func TestOzToMl(t *testing.T) {
	if got := OzToMl(1); got != 29.5735 {
		t.Fatalf("OzToMl(1) = %f", got)
	}
	if got := OzToMl(0); got != 0 {
		t.Fatalf("OzToMl(0) = %f", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, oz := range []float64{0, 0.5, 1, 4.25, 8, 32} {
		back := MlToOz(OzToMl(oz))
		if math.Abs(back-oz) > 1e-9 {
			t.Fatalf("round trip %f -> %f", oz, back)
		}
	}
}

func TestToStorage(t *testing.T) {
	// Imperial input passes through untouched
	if got := ToStorage(4, false); got != 4 {
		t.Fatalf("ToStorage imperial = %f", got)
	}
	// Metric input converts to ounces
	got := ToStorage(120, true)
	want := 120 / 29.5735
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ToStorage(120 ml) = %f, want %f", got, want)
	}
}

func TestToDisplay(t *testing.T) {
	if got := ToDisplay(4, false); got != 4 {
		t.Fatalf("ToDisplay imperial = %f", got)
	}
	got := ToDisplay(4, true)
	if math.Abs(got-4*29.5735) > 1e-9 {
		t.Fatalf("ToDisplay(4 oz, metric) = %f", got)
	}
}

func TestStorageDisplayRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1.5, 5, 150} {
		for _, metric := range []bool{false, true} {
			back := ToDisplay(ToStorage(v, metric), metric)
			if math.Abs(back-v) > 1e-9 {
				t.Fatalf("round trip %f (metric=%v) -> %f", v, metric, back)
			}
		}
	}
}

func TestFormatVolume(t *testing.T) {
	if got := FormatVolume(4, false); got != "4.0 oz" {
		t.Fatalf("got %q", got)
	}
	if got := FormatVolume(4, true); got != "118.3 ml" {
		t.Fatalf("got %q", got)
	}
	if got := FormatVolume(0, false); got != "0.0 oz" {
		t.Fatalf("got %q", got)
	}
}

func TestVolumeUnit(t *testing.T) {
	if VolumeUnit(false) != "oz" || VolumeUnit(true) != "ml" {
		t.Fatal("unit names wrong")
	}
}
