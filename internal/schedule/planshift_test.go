package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanShift(t *testing.T) {
	tests := []struct {
		name      string
		desired   int
		duration  int
		slots     []Slot
		wantShift bool
		wantStart int
		wantNote  bool
	}{
		{
			name:      "conflict pushes past existing job",
			desired:   9 * 60, // 09:00
			duration:  60,
			slots:     []Slot{{Start: 9*60 + 30, Duration: 60}}, // 09:30-10:30
			wantShift: true,
			wantStart: 10*60 + 30, // 10:30
		},
		{
			name:      "no overlap returns desired unchanged",
			desired:   9 * 60,
			duration:  30,
			slots:     []Slot{{Start: 10 * 60, Duration: 60}},
			wantShift: false,
			wantStart: 9 * 60,
		},
		{
			name:      "empty day never shifts",
			desired:   8 * 60,
			duration:  120,
			wantShift: false,
			wantStart: 8 * 60,
		},
		{
			name:     "earliest gap between slots wins",
			desired:  9 * 60,
			duration: 30,
			slots: []Slot{
				{Start: 9 * 60, Duration: 60},       // 09:00-10:00
				{Start: 10*60 + 30, Duration: 60},   // 10:30-11:30
				{Start: 13 * 60, Duration: 60},      // 13:00-14:00
			},
			wantShift: true,
			wantStart: 10 * 60, // fits the 10:00-10:30 gap
		},
		{
			name:     "walks through back-to-back slots",
			desired:  9 * 60,
			duration: 60,
			slots: []Slot{
				{Start: 9 * 60, Duration: 60},
				{Start: 10 * 60, Duration: 60},
				{Start: 11 * 60, Duration: 60},
			},
			wantShift: true,
			wantStart: 12 * 60,
		},
		{
			name:      "zero slot duration defaults to an hour",
			desired:   9 * 60,
			duration:  30,
			slots:     []Slot{{Start: 9 * 60}}, // implicit 09:00-10:00
			wantShift: true,
			wantStart: 10 * 60,
		},
		{
			name:      "candidate rounds up to five minutes",
			desired:   9 * 60,
			duration:  60,
			slots:     []Slot{{Start: 8*60 + 30, Duration: 93}}, // ends 10:03
			wantShift: true,
			wantStart: 10*60 + 5,
		},
		{
			name:      "end of day overrun is flagged not rejected",
			desired:   20 * 60,
			duration:  90,
			slots:     []Slot{{Start: 20 * 60, Duration: 60}}, // 20:00-21:00
			wantShift: true,
			wantStart: 21 * 60,
			wantNote:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := PlanShift(tt.desired, tt.duration, tt.slots, DefaultEndOfDayMinutes)
			require.Equal(t, tt.wantShift, res.Shifted)
			require.Equal(t, tt.wantStart, res.NewStart)
			if tt.wantNote {
				require.NotEmpty(t, res.Note)
			} else {
				require.Empty(t, res.Note)
			}
		})
	}
}

// randomDay builds a set of non-pathological slots aligned to the 5-minute
// grid, matching how real bookings are entered.
func randomDay(rng *rand.Rand) []Slot {
	n := rng.Intn(6)
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		start := (rng.Intn(144) + 84) * 5 // 07:00 .. 19:00
		dur := (rng.Intn(24) + 6) * 5     // 30m .. 2h30m
		slots = append(slots, Slot{Start: start, Duration: dur})
	}
	return slots
}

func TestPlanShiftProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		slots := randomDay(rng)
		desired := (rng.Intn(150) + 84) * 5
		duration := (rng.Intn(24) + 6) * 5

		res := PlanShift(desired, duration, slots, DefaultEndOfDayMinutes)

		// Monotonicity: never plans before the desired start.
		require.GreaterOrEqual(t, res.NewStart, desired)

		// Non-overlap: the planned interval conflicts with nothing.
		require.False(t, HasConflict(res.NewStart, duration, slots),
			"planned start %d overlaps slots %v", res.NewStart, slots)

		// Idempotence: re-planning the output reports no shift.
		again := PlanShift(res.NewStart, duration, slots, DefaultEndOfDayMinutes)
		require.False(t, again.Shifted)
		require.Equal(t, res.NewStart, again.NewStart)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	slot := Slot{Start: 600, Duration: 60} // 10:00-11:00

	// Touching endpoints do not overlap.
	require.False(t, Overlaps(540, 60, slot))  // 09:00-10:00
	require.False(t, Overlaps(660, 60, slot))  // 11:00-12:00
	require.True(t, Overlaps(540, 61, slot))   // 09:00-10:01
	require.True(t, Overlaps(659, 60, slot))   // 10:59-11:59
	require.True(t, Overlaps(600, 60, slot))   // exact cover
	require.True(t, Overlaps(570, 120, slot))  // strict superset
}

func TestClockRoundTrip(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	require.Equal(t, 570, m)
	require.Equal(t, "09:30", FormatClock(570))

	_, err = ParseClock("25:00")
	require.Error(t, err)
	_, err = ParseClock("morning")
	require.Error(t, err)
}
