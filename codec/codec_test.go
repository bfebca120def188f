package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaverkit/beaver/machine"
)

func TestTotalMachineCount(t *testing.T) {
	cases := []struct {
		nStates int
		want    uint64
	}{
		{1, 25},
		{2, 6_561},
		{3, 4_826_809},
		{4, 6_975_757_441},
		{5, 16_679_880_978_201},
	}
	for _, tc := range cases {
		got, err := TotalMachineCount(tc.nStates)
		require.NoError(t, err, "n=%d", tc.nStates)
		require.Equal(t, tc.want, got, "n=%d", tc.nStates)
	}
}

func TestTotalMachineCount_Bounds(t *testing.T) {
	// 25^12 still fits in uint64.
	got, err := TotalMachineCount(6)
	require.NoError(t, err)
	require.Equal(t, uint64(59_604_644_775_390_625), got)

	// 29^14 does not; the overflow must surface as a configuration error.
	_, err = TotalMachineCount(7)
	require.ErrorIs(t, err, ErrStateCount)
	_, err = TotalMachineCount(0)
	require.ErrorIs(t, err, ErrStateCount)
}

func TestEncodeDecode_KnownDigits(t *testing.T) {
	// Field A0 is the least significant digit, so id 0 is the all-"0RA"
	// table except A0, which holds digit 0 = "0RA" too.
	tb, err := Decode(0, 2)
	require.NoError(t, err)
	require.Equal(t, "0RA0RA_0RA0RA", tb.String())

	// id 2 flips only A0 to digit 2 = "0RB".
	tb, err = Decode(2, 2)
	require.NoError(t, err)
	require.Equal(t, "0RB0RA_0RA0RA", tb.String())

	// The highest id is the all-halt table.
	total, err := TotalMachineCount(2)
	require.NoError(t, err)
	tb, err = Decode(MachineID(total-1), 2)
	require.NoError(t, err)
	require.Equal(t, "------_------", tb.String())
}

func TestEncodeDecode_Bijection(t *testing.T) {
	total, err := TotalMachineCount(2)
	require.NoError(t, err)
	seen := make(map[string]bool, total)
	for id := MachineID(0); id < MachineID(total); id++ {
		tb, err := Decode(id, 2)
		require.NoError(t, err)
		back, err := Encode(&tb)
		require.NoError(t, err)
		require.Equal(t, id, back, "table %s", tb.String())
		s := tb.String()
		require.False(t, seen[s], "duplicate table %s", s)
		seen[s] = true
	}
	require.Len(t, seen, int(total))
}

func TestEncode_HaltAliases(t *testing.T) {
	// "1RZ" and "---" occupy the same digit.
	a, err := machine.ParseTable("1RB1RZ_1LA0RB")
	require.NoError(t, err)
	b, err := machine.ParseTable("1RB---_1LA0RB")
	require.NoError(t, err)
	ida, err := Encode(&a)
	require.NoError(t, err)
	idb, err := Encode(&b)
	require.NoError(t, err)
	require.Equal(t, ida, idb)
}

func TestDecode_Errors(t *testing.T) {
	total, err := TotalMachineCount(2)
	require.NoError(t, err)
	_, err = Decode(MachineID(total), 2)
	require.ErrorIs(t, err, ErrIDOutOfRange)
	_, err = Decode(0, 7)
	require.ErrorIs(t, err, ErrStateCount)
}

func TestEncode_SampledRoundTrip3(t *testing.T) {
	total, err := TotalMachineCount(3)
	require.NoError(t, err)
	// Stride through the 3-state space instead of walking all ~4.8M ids.
	for id := MachineID(0); id < MachineID(total); id += 104_729 {
		tb, err := Decode(id, 3)
		require.NoError(t, err)
		back, err := Encode(&tb)
		require.NoError(t, err)
		require.Equal(t, id, back)
	}
}
