package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/beaverkit/beaver/bbfile"
	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/machine"
	"github.com/beaverkit/beaver/search"
	"github.com/beaverkit/beaver/store"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().String("config", "", "")
	sweepFlags(cmd)
	cmd.Flags().String("db", "", "")
	cmd.Flags().String("metrics-addr", "", "")
	return cmd
}

func TestResolve_Defaults(t *testing.T) {
	cmd := testCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	s, err := resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, defaultSettings(), s)
}

func TestResolve_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"states: 3\nbatch_size: 1234\ncycler_steps: 99\ndb: sweep.db\n"), 0o644))

	cmd := testCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	s, err := resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, 3, s.States)
	require.Equal(t, uint64(1234), s.BatchSize)
	require.Equal(t, uint64(99), s.CyclerSteps)
	require.Equal(t, "sweep.db", s.DB)
	// untouched keys keep their defaults
	require.Equal(t, defaultSettings().BouncerSteps, s.BouncerSteps)
	require.Equal(t, defaultSettings().Workers, s.Workers)
}

// Explicit flags win over the config file.
func TestResolve_FlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("states: 3\nbatch_size: 1234\n"), 0o644))

	cmd := testCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--states", "5", "--workers", "2"}))

	s, err := resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, 5, s.States)
	require.Equal(t, 2, s.Workers)
	// file still applies where no flag was set
	require.Equal(t, uint64(1234), s.BatchSize)
}

// Without --states the export command must use its own documented default
// of 5, not the sweep default the settings merge would supply.
func TestExport_DefaultStates(t *testing.T) {
	const champion = "1RB1LC_1RC1RB_1RD0LE_1LA1LD_---0LA"
	dir := t.TempDir()
	db := filepath.Join(dir, "sweep.db")
	out := filepath.Join(dir, "seed.bin")

	tb, err := machine.ParseTable(champion)
	require.NoError(t, err)
	id, err := codec.Encode(&tb)
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	b := search.BatchSummary{
		StartID:      id,
		EndID:        id + 1,
		Scanned:      1,
		Undecided:    1,
		UndecidedIDs: []codec.MachineID{id},
	}
	require.NoError(t, st.SaveBatch(context.Background(), 5, b))
	require.NoError(t, st.Close())

	require.NoError(t, exportCmd.Flags().Set("db", db))
	require.NoError(t, exportCmd.Flags().Set("out", out))
	require.NoError(t, exportCmd.RunE(exportCmd, nil))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	sr, err := bbfile.NewSeedReader(f)
	require.NoError(t, err)
	require.EqualValues(t, 1, sr.Header().Records)
	got, err := sr.Machine(0)
	require.NoError(t, err)
	require.Equal(t, champion, got.String())
}

func TestResolve_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("states: [not an int]\n"), 0o644))

	cmd := testCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	_, err := resolve(cmd)
	require.Error(t, err)

	cmd = testCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	_, err = resolve(cmd)
	require.Error(t, err)
}
