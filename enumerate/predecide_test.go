package enumerate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaverkit/beaver/machine"
)

func tbOf(t *testing.T, text string) machine.TransitionTable {
	t.Helper()
	tb, err := machine.ParseTable(text)
	require.NoError(t, err)
	return tb
}

func TestPrescreen_Verdicts(t *testing.T) {
	cases := []struct {
		text    string
		verdict Verdict
		reason  Reason
	}{
		// First field halts: settled in one step.
		{"------", VerdictHalt, ReasonNone},
		{"1RZ0RA", VerdictHalt, ReasonNone},
		// Non-canonical start field.
		{"1LB1RZ_0RA0RA", VerdictReject, ReasonStartNotRightToB},
		{"1RA---", VerdictReject, ReasonStartNotRightToB},
		// No halt, or more than one.
		{"1RB1LB_1LA1RA", VerdictReject, ReasonHaltCount},
		{"1RB---_---1RA", VerdictReject, ReasonHaltCount},
		// 0-column all rightward (halts allowed).
		{"1RB0RB_1RC0RC_---0LC", VerdictReject, ReasonOneDirection},
		// Two-field loops over blank tape.
		{"0RB---_0LA1RA", VerdictReject, ReasonStartCycle},
		{"1RB0LC_1RA---_0LB1LA", VerdictReject, ReasonStartCycle},
		{"0RB0LC_0RB---_1LA1RA", VerdictReject, ReasonStartCycle},
		// Blank tape forever.
		{"0RB1RB_0RC1LA_0LA---", VerdictReject, ReasonZeroWrites},
		// Some field provably never consulted.
		{"1RB---_0LB0RA_0RA0RA", VerdictReject, ReasonUnusedStates},
		{"1RB1LC_0LC0LC_0LC---", VerdictReject, ReasonUnusedStates},
		// State C only entered via D: a renaming of an earlier table.
		{"1RB---_1RD1LD_0LA0RA_1LC0RC", VerdictReject, ReasonStateOrder},
		// Champions survive every check.
		{"1RB1LB_1LA---", VerdictContinue, ReasonNone},
		{"1RB1RZ_1LB0RC_1LC1LA", VerdictContinue, ReasonNone},
		{"1RB1LB_1LA0LC_1RZ1LD_1RD0RA", VerdictContinue, ReasonNone},
		{"1RB1LC_1RC1RB_1RD0LE_1LA1LD_1RZ0LA", VerdictContinue, ReasonNone},
		{"1RB1LB_1LD---_1LA0LC_1RC0RB", VerdictContinue, ReasonNone},
	}
	for _, c := range cases {
		tb := tbOf(t, c.text)
		v, r := Prescreen(&tb)
		require.Equal(t, c.verdict, v, c.text)
		require.Equal(t, c.reason, r, c.text)
	}
}

// Over the full 2-state space the cheap digit-position checks have exact
// expected tallies: the halt digit is 1 of 9 first-field values, canonical
// starts are 2 of 9.
func TestPrescreen_TwoStateTallies(t *testing.T) {
	e, err := New(2)
	require.NoError(t, err)

	var counts PruneCount
	var halts, continues uint64
	for {
		_, tb, ok := e.Next()
		if !ok {
			break
		}
		switch v, r := Prescreen(tb); v {
		case VerdictHalt:
			halts++
		case VerdictReject:
			counts.Add(r)
		case VerdictContinue:
			continues++
		}
	}

	require.Equal(t, uint64(6561/9), halts)
	require.Equal(t, uint64(6561/9*6), counts.Get(ReasonStartNotRightToB))
	require.Equal(t, uint64(6561), halts+continues+counts.Total())
	// 2-state tables have no room for out-of-order states.
	require.Zero(t, counts.Get(ReasonStateOrder))
	require.NotZero(t, continues)
}

func TestPruneCount_Merge(t *testing.T) {
	var a, b PruneCount
	a.Add(ReasonHaltCount)
	a.AddN(ReasonStartNotRightToB, 5)
	b.Add(ReasonHaltCount)
	b.Add(ReasonStartCycle)

	a.Merge(b)
	require.Equal(t, uint64(2), a.Get(ReasonHaltCount))
	require.Equal(t, uint64(5), a.Get(ReasonStartNotRightToB))
	require.Equal(t, uint64(1), a.Get(ReasonStartCycle))
	require.Equal(t, uint64(8), a.Total())
}

func TestReasonStrings(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Reasons() {
		s := r.String()
		require.NotEqual(t, "unknown", s)
		require.False(t, seen[s], s)
		seen[s] = true
	}
	require.Len(t, seen, int(reasonCount)-1)
}
