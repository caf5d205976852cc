package components

import "testing"

func TestLifetimeTick(t *testing.T) {
	tests := []struct {
		name        string
		maxTicks    int
		ticks       int
		wantExpired bool
		wantLeft    int
	}{
		{"fresh", 5, 0, false, 5},
		{"one before expiry", 5, 4, false, 1},
		{"expires on last tick", 5, 5, true, 0},
		{"stays expired", 5, 9, true, 0},
		{"zero max expires on first tick", 0, 1, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifetime(tt.maxTicks)
			for i := 0; i < tt.ticks; i++ {
				if got := l.Tick(); got != l.Expired {
					t.Fatalf("Tick() = %v but Expired = %v", got, l.Expired)
				}
			}
			if l.Expired != tt.wantExpired {
				t.Errorf("Expired = %v, want %v", l.Expired, tt.wantExpired)
			}
			if got := l.Remaining(); got != tt.wantLeft {
				t.Errorf("Remaining() = %d, want %d", got, tt.wantLeft)
			}
		})
	}
}
