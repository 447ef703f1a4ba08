package report

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/encodeous/dsdv/core"
	"github.com/rs/xid"
)

// Recorder buffers run results and writes them to a SQLite database in batches.
type Recorder struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	pending   []core.Result
	batchSize int
}

func NewRecorder(path string) *Recorder {
	return &Recorder{
		path:      path,
		batchSize: 1000,
	}
}

// Init creates the database file and the results table. An existing database file is rejected.
func (r *Recorder) Init() error {
	if r.path == "" {
		r.path = "dsdv_runs_" + xid.New().String()
	}
	filename := r.path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}
	r.DB = db

	_, err = r.Exec(`
		create table dsdv_runs (
			run_id         varchar(20) not null unique,
			nodes          integer not null,
			pdr_before     real not null,
			delay_before   real,
			pdr            real not null,
			delay          real,
			overhead       integer not null,
			convergence_ns integer not null,
			rounds         integer not null,
			link_failed    integer not null
		);
	`)
	if err != nil {
		return err
	}
	r.statement, err = r.Prepare(`insert into dsdv_runs values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// Filename is the path of the database on disk
func (r *Recorder) Filename() string {
	return r.path + ".sqlite3"
}

func (r *Recorder) Write(res core.Result) error {
	r.pending = append(r.pending, res)
	if len(r.pending) >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes all buffered results in a single transaction
func (r *Recorder) Flush() error {
	if len(r.pending) == 0 || r.DB == nil {
		return nil
	}
	tx, err := r.Begin()
	if err != nil {
		return err
	}
	stmt := tx.Stmt(r.statement)
	for _, res := range r.pending {
		_, err = stmt.Exec(
			res.RunId.String(),
			res.Nodes,
			res.PdrBefore,
			finiteOrNull(res.DelayBefore),
			res.Pdr,
			finiteOrNull(res.Delay),
			res.Overhead,
			res.Convergence.Nanoseconds(),
			res.Rounds,
			res.LinkFailed,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert run %s: %w", res.RunId, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return err
	}
	r.pending = nil
	return nil
}

func (r *Recorder) Close() error {
	if r.DB == nil {
		return nil
	}
	err := r.Flush()
	if err != nil {
		return err
	}
	db := r.DB
	r.DB = nil
	return db.Close()
}

// LoadResults reads back every run stored in the database at filename, ordered by node count.
func LoadResults(filename string) ([]core.Result, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`select * from dsdv_runs order by nodes, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]core.Result, 0)
	for rows.Next() {
		var (
			res         core.Result
			runId       string
			delayBefore sql.NullFloat64
			delay       sql.NullFloat64
			convergence int64
		)
		err = rows.Scan(&runId, &res.Nodes, &res.PdrBefore, &delayBefore, &res.Pdr, &delay,
			&res.Overhead, &convergence, &res.Rounds, &res.LinkFailed)
		if err != nil {
			return nil, err
		}
		res.RunId, err = xid.FromString(runId)
		if err != nil {
			return nil, err
		}
		res.DelayBefore = nullToInf(delayBefore)
		res.Delay = nullToInf(delay)
		res.Convergence = time.Duration(convergence)
		results = append(results, res)
	}
	return results, rows.Err()
}

func finiteOrNull(f float64) sql.NullFloat64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullToInf(f sql.NullFloat64) float64 {
	if !f.Valid {
		return math.Inf(1)
	}
	return f.Float64
}
