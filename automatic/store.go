package automatic

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/freecell/move"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	batch       TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	outcome     TEXT NOT NULL,
	moves       INTEGER NOT NULL,
	nodes       INTEGER NOT NULL,
	states      INTEGER NOT NULL,
	elapsed_us  INTEGER NOT NULL,
	solution    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS results_batch ON results (batch);
`

// ResultStore keeps batch outcomes in a sqlite file. Only outcomes are
// stored, never search state.
type ResultStore struct {
	db *sql.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-result-store")
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

// Save stores results under the batch label in one transaction.
func (s *ResultStore) Save(ctx context.Context, batch string, results []Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results
		(batch, seed, outcome, moves, nodes, states, elapsed_us, solution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range results {
		// seeds are stored bit for bit; sqlite integers are signed.
		_, err := stmt.ExecContext(ctx, batch, int64(r.Seed), r.Outcome, len(r.Moves),
			r.NodesExplored, r.StatesSeen, r.Elapsed.Microseconds(), move.ListString(r.Moves))
		if err != nil {
			return fmt.Errorf("saving seed %d: %w", r.Seed, err)
		}
	}
	return tx.Commit()
}

// Load returns the results of a batch in seed order.
func (s *ResultStore) Load(ctx context.Context, batch string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seed, outcome, nodes, states, elapsed_us, solution
		FROM results WHERE batch = ? ORDER BY id`, batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []Result
	for rows.Next() {
		var (
			seed      int64
			elapsedUS int64
			solution  string
			r         Result
		)
		if err := rows.Scan(&seed, &r.Outcome, &r.NodesExplored, &r.StatesSeen,
			&elapsedUS, &solution); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		r.Moves, err = move.ParseList(solution)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", r.Seed, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// the column is signed, so seeds are ordered here.
	slices.SortFunc(results, func(a, b Result) int { return cmp.Compare(a.Seed, b.Seed) })
	return results, nil
}

// Batches lists the stored batch labels.
func (s *ResultStore) Batches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT batch FROM results ORDER BY batch`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var batches []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
