package readstats

import "testing"

func TestFormatRate(t *testing.T) {
	if got := FormatRate(1200); got != "1.2 KiB/s" {
		t.Fatalf("unexpected rate format: %q", got)
	}
}

func TestFormatTotal(t *testing.T) {
	if got := FormatTotal(3 * 1024 * 1024); got != "3.0 MiB" {
		t.Fatalf("unexpected total format: %q", got)
	}
}

func TestFormatTotal_SmallValue_StaysInBaseUnit(t *testing.T) {
	if got := FormatTotal(500); got != "500 B" {
		t.Fatalf("expected base unit for small value, got %q", got)
	}
}

func TestFormatTotal_CapsAtLargestUnit(t *testing.T) {
	if got := FormatTotal(2048 * 1024 * 1024 * 1024); got != "2048.0 GiB" {
		t.Fatalf("unexpected total format: %q", got)
	}
}

func TestSnapshot_String(t *testing.T) {
	s := Snapshot{Reads: 3, Bytes: 2048, Rate: 100, Timeouts: 1, Expired: 2, Failures: 4}
	want := "reads=3 bytes=2.0 KiB rate=100 B/s timeouts=1 expired=2 failures=4"
	if got := s.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
