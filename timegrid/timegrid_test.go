package timegrid

import (
	"errors"
	"testing"
)

func TestNewGridLength(t *testing.T) {
	cases := []struct {
		name    string
		horizon int
		step    int
		wantLen int
	}{
		{"one day at ten minutes", 86400, 600, 145},
		{"one orbit at one minute", 5400, 60, 91},
		{"horizon not a multiple of step", 100, 60, 2},
		{"horizon equals step", 60, 60, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.horizon, tc.step)
			if err != nil {
				t.Fatalf("New(%d, %d): %v", tc.horizon, tc.step, err)
			}
			if got := g.Len(); got != tc.wantLen {
				t.Fatalf("Len() = %d, want %d", got, tc.wantLen)
			}
			if last := g.TimeAt(g.Len() - 1); last > tc.horizon {
				t.Fatalf("final timestamp %d exceeds horizon %d", last, tc.horizon)
			}
		})
	}
}

func TestNewGridRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		horizon int
		step    int
	}{
		{"zero step", 600, 0},
		{"negative step", 600, -5},
		{"horizon below step", 30, 60},
		{"zero horizon", 0, 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.horizon, tc.step); !errors.Is(err, ErrInvalidTimeHorizon) {
				t.Fatalf("New(%d, %d) error = %v, want ErrInvalidTimeHorizon", tc.horizon, tc.step, err)
			}
		})
	}
}

func TestTimesAreUniformAndIncreasing(t *testing.T) {
	g, err := New(3600, 300)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	times := g.Times()
	if len(times) != g.Len() {
		t.Fatalf("Times() length = %d, want %d", len(times), g.Len())
	}
	if times[0] != 0 {
		t.Fatalf("first timestamp = %d, want 0", times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i]-times[i-1] != g.StepSeconds {
			t.Fatalf("spacing between steps %d and %d is %d, want %d", i-1, i, times[i]-times[i-1], g.StepSeconds)
		}
	}
}
