package settings

import (
	"testing"
	"time"
)

func TestReadTimeoutMs_Int(t *testing.T) {
	r := ReadTimeoutMs(5000)
	if r.Int() != 5000 {
		t.Fatalf("expected 5000, got %d", r.Int())
	}
}

func TestReadTimeoutMs_Duration(t *testing.T) {
	r := ReadTimeoutMs(10)
	if r.Duration() != 10*time.Millisecond {
		t.Fatalf("expected 10ms, got %v", r.Duration())
	}
}

func TestReadTimeoutMs_Duration_Zero(t *testing.T) {
	if ReadTimeoutMs(0).Duration() != 0 {
		t.Fatalf("expected 0, got %v", ReadTimeoutMs(0).Duration())
	}
}

func TestDialTimeoutMs_Duration(t *testing.T) {
	d := DialTimeoutMs(3000)
	if d.Duration() != 3*time.Second {
		t.Fatalf("expected 3s, got %v", d.Duration())
	}
	if d.Int() != 3000 {
		t.Fatalf("expected 3000, got %d", d.Int())
	}
}
