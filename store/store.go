package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/search"
)

// Store is a SQLite-backed record of finished batches, keyed by state
// count and batch index. Ids fit INTEGER columns for every state count the
// codec accepts.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	n_states        INTEGER NOT NULL,
	batch           INTEGER NOT NULL,
	start_id        INTEGER NOT NULL,
	end_id          INTEGER NOT NULL,
	scanned         INTEGER NOT NULL,
	halted          INTEGER NOT NULL,
	cyclers         INTEGER NOT NULL,
	bouncers        INTEGER NOT NULL,
	undecided       INTEGER NOT NULL,
	pruned          BLOB NOT NULL,
	champion_id     INTEGER NOT NULL,
	champion_steps  INTEGER NOT NULL,
	champion_ones   INTEGER NOT NULL,
	champion_tape   INTEGER NOT NULL,
	sigma_id        INTEGER NOT NULL,
	sigma_steps     INTEGER NOT NULL,
	sigma_ones      INTEGER NOT NULL,
	sigma_tape      INTEGER NOT NULL,
	PRIMARY KEY (n_states, batch)
);
CREATE TABLE IF NOT EXISTS undecided (
	n_states   INTEGER NOT NULL,
	batch      INTEGER NOT NULL,
	machine_id INTEGER NOT NULL,
	PRIMARY KEY (n_states, machine_id)
);`

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveBatch writes one finished batch in a single transaction, replacing
// any previous record of the same batch. Batch results are reproducible,
// so replacement is always safe.
func (s *Store) SaveBatch(ctx context.Context, nStates int, b search.BatchSummary) (retErr error) {
	pruned, err := json.Marshal(b.Pruned)
	if err != nil {
		return fmt.Errorf("store: encode prune counts: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO batches
		(n_states, batch, start_id, end_id, scanned, halted, cyclers, bouncers, undecided, pruned,
		 champion_id, champion_steps, champion_ones, champion_tape,
		 sigma_id, sigma_steps, sigma_ones, sigma_tape)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nStates, b.Batch, int64(b.StartID), int64(b.EndID),
		b.Scanned, b.Halted, b.Cyclers, b.Bouncers, b.Undecided, pruned,
		int64(b.Champion.ID), b.Champion.Steps, b.Champion.Ones, b.Champion.Tape,
		int64(b.OnesChampion.ID), b.OnesChampion.Steps, b.OnesChampion.Ones, b.OnesChampion.Tape,
	); err != nil {
		return fmt.Errorf("store: insert batch: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM undecided WHERE n_states = ? AND batch = ?`, nStates, b.Batch); err != nil {
		return fmt.Errorf("store: clear undecided: %w", err)
	}
	for _, id := range b.UndecidedIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO undecided (n_states, batch, machine_id) VALUES (?, ?, ?)`,
			nStates, b.Batch, int64(id)); err != nil {
			return fmt.Errorf("store: insert undecided: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// Batches loads every stored batch for a state count, in batch order,
// ready to seed a resumed sweep.
func (s *Store) Batches(ctx context.Context, nStates int) ([]search.BatchSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		batch, start_id, end_id, scanned, halted, cyclers, bouncers, undecided, pruned,
		champion_id, champion_steps, champion_ones, champion_tape,
		sigma_id, sigma_steps, sigma_ones, sigma_tape
		FROM batches WHERE n_states = ? ORDER BY batch`, nStates)
	if err != nil {
		return nil, fmt.Errorf("store: select batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []search.BatchSummary
	for rows.Next() {
		var b search.BatchSummary
		var start, end, champID, sigmaID int64
		var pruned []byte
		if err := rows.Scan(
			&b.Batch, &start, &end, &b.Scanned, &b.Halted, &b.Cyclers, &b.Bouncers, &b.Undecided, &pruned,
			&champID, &b.Champion.Steps, &b.Champion.Ones, &b.Champion.Tape,
			&sigmaID, &b.OnesChampion.Steps, &b.OnesChampion.Ones, &b.OnesChampion.Tape,
		); err != nil {
			return nil, fmt.Errorf("store: scan batch: %w", err)
		}
		if err := json.Unmarshal(pruned, &b.Pruned); err != nil {
			return nil, fmt.Errorf("store: decode prune counts: %w", err)
		}
		b.StartID = codec.MachineID(start)
		b.EndID = codec.MachineID(end)
		b.Champion.ID = codec.MachineID(champID)
		b.OnesChampion.ID = codec.MachineID(sigmaID)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: batches: %w", err)
	}
	for i := range out {
		ids, err := s.undecidedForBatch(ctx, nStates, out[i].Batch)
		if err != nil {
			return nil, err
		}
		out[i].UndecidedIDs = ids
	}
	return out, nil
}

func (s *Store) undecidedForBatch(ctx context.Context, nStates int, batch uint64) ([]codec.MachineID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT machine_id FROM undecided WHERE n_states = ? AND batch = ? ORDER BY machine_id`,
		nStates, batch)
	if err != nil {
		return nil, fmt.Errorf("store: select undecided: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var ids []codec.MachineID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan undecided: %w", err)
		}
		ids = append(ids, codec.MachineID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: undecided: %w", err)
	}
	return ids, nil
}

// UndecidedIDs returns every undecided id stored for a state count, in
// ascending order.
func (s *Store) UndecidedIDs(ctx context.Context, nStates int) ([]codec.MachineID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT machine_id FROM undecided WHERE n_states = ? ORDER BY machine_id`, nStates)
	if err != nil {
		return nil, fmt.Errorf("store: select undecided: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var ids []codec.MachineID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan undecided: %w", err)
		}
		ids = append(ids, codec.MachineID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: undecided: %w", err)
	}
	return ids, nil
}

// Summary folds every stored batch into one summary, exactly as a live
// sweep would.
func (s *Store) Summary(ctx context.Context, nStates int) (search.Summary, error) {
	batches, err := s.Batches(ctx, nStates)
	if err != nil {
		return search.Summary{}, err
	}
	total, err := codec.TotalMachineCount(nStates)
	if err != nil {
		return search.Summary{}, err
	}
	sum := search.Summary{NStates: nStates, Total: total}
	for _, b := range batches {
		sum.Merge(b)
	}
	sum.Finish()
	return sum, nil
}
