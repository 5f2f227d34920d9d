// Package store keeps a SQLite history of calculation runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpgo/estate-calculator/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrRunNotFound is returned by GetRun for an unknown id
var ErrRunNotFound = errors.New("run not found")

// RunKind distinguishes single projections from scenario comparisons
type RunKind string

const (
	KindProjection RunKind = "projection"
	KindScenarios  RunKind = "scenarios"
)

// Run is one stored calculation. Payload holds the full JSON result and is only
// populated by GetRun.
type Run struct {
	ID          string          `json:"id"`
	Kind        RunKind         `json:"kind"`
	Name        string          `json:"name"`
	CreatedAt   time.Time       `json:"created_at"`
	GrossEstate decimal.Decimal `json:"gross_estate"`
	TotalTax    decimal.Decimal `json:"total_tax"`
	NetToHeirs  decimal.Decimal `json:"net_to_heirs"`
	Recommended string          `json:"recommended,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// Store provides SQLite-backed run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the history database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveProjection records a single projection.
func (s *Store) SaveProjection(ctx context.Context, summary *domain.ProjectionSummary) (Run, error) {
	if summary == nil {
		return Run{}, errors.New("projection is required")
	}
	run := Run{
		Kind:        KindProjection,
		Name:        summary.Name,
		GrossEstate: summary.GrossEstate,
		TotalTax:    summary.TotalTax,
		NetToHeirs:  summary.NetToHeirs,
	}
	return s.insert(ctx, run, summary)
}

// SaveComparison records a scenario comparison, keyed on its baseline figures.
func (s *Store) SaveComparison(ctx context.Context, cmp *domain.ScenarioComparison) (Run, error) {
	if cmp == nil {
		return Run{}, errors.New("comparison is required")
	}
	run := Run{
		Kind:        KindScenarios,
		Name:        fmt.Sprintf("%s + %d scenarios", cmp.Baseline.Name, len(cmp.Scenarios)),
		GrossEstate: cmp.Baseline.GrossEstate,
		TotalTax:    cmp.Baseline.TotalTax,
		NetToHeirs:  cmp.Baseline.NetToHeirs,
		Recommended: cmp.RecommendedScenario,
	}
	return s.insert(ctx, run, cmp)
}

func (s *Store) insert(ctx context.Context, run Run, result any) (Run, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return Run{}, fmt.Errorf("encoding run payload: %w", err)
	}
	run.ID = uuid.New().String()
	run.CreatedAt = s.now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `INSERT INTO runs
		(run_id, kind, name, created_at, gross_estate, total_tax, net_to_heirs, recommended, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.Name, run.CreatedAt.Format(time.RFC3339),
		run.GrossEstate.String(), run.TotalTax.String(), run.NetToHeirs.String(),
		run.Recommended, payload,
	)
	if err != nil {
		return Run{}, fmt.Errorf("saving run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first, without payloads. A non-positive
// limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, kind, name, created_at, gross_estate, total_tax, net_to_heirs, recommended
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads one run including its payload.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT run_id, kind, name, created_at, gross_estate, total_tax, net_to_heirs, recommended, payload
		FROM runs WHERE run_id = ?`, id)
	run, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner, withPayload bool) (Run, error) {
	var (
		run             Run
		kind, created   string
		gross, tax, net string
		payload         []byte
	)
	dest := []any{&run.ID, &kind, &run.Name, &created, &gross, &tax, &net, &run.Recommended}
	if withPayload {
		dest = append(dest, &payload)
	}
	if err := sc.Scan(dest...); err != nil {
		return Run{}, err
	}
	run.Kind = RunKind(kind)
	var err error
	if run.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return Run{}, fmt.Errorf("run %s: bad timestamp: %w", run.ID, err)
	}
	if run.GrossEstate, err = decimal.NewFromString(gross); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	if run.TotalTax, err = decimal.NewFromString(tax); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	if run.NetToHeirs, err = decimal.NewFromString(net); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	if withPayload {
		run.Payload = payload
	}
	return run, nil
}
