package common

import "testing"

func TestCountdownsEndOnTheirTick(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    int
	}{
		{name: "half_second", seconds: 0.5, want: 30},
		{name: "one_second", seconds: 1, want: 60},
		{name: "projectile_lifetime", seconds: 5, want: 300},
		{name: "mission_timer", seconds: 180, want: 10800},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			remaining, elapsed := tc.seconds, 0.0
			expiredAt, reachedAt := 0, 0
			for tick := 1; tick <= tc.want+5; tick++ {
				remaining -= FixedDelta
				elapsed += FixedDelta
				if expiredAt == 0 && Expired(remaining) {
					expiredAt = tick
				}
				if reachedAt == 0 && Reached(elapsed, tc.seconds) {
					reachedAt = tick
				}
			}
			if expiredAt != tc.want || reachedAt != tc.want {
				t.Fatalf("expected tick %d, got expired=%d reached=%d", tc.want, expiredAt, reachedAt)
			}
		})
	}
}
