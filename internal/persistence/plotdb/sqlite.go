package plotdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"

	"plotgrid.dev/internal/grid"
)

// Store is the SQLite-backed plot store. Reads and commits are
// synchronous; clears run on a single background worker and report
// through a one-shot callback.
type Store struct {
	db *sql.DB

	ch   chan clearJob
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type clearJob struct {
	world    string
	id       grid.PlotID
	isDelete bool
	done     func()
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db: db,
		// Small buffer: clears are rare and per-plot concurrency is
		// already throttled above this store.
		ch: make(chan clearJob, 16),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plots (
			world TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			owner TEXT NOT NULL DEFAULT '',
			counts_toward_max INTEGER NOT NULL DEFAULT 1,
			merged_n INTEGER NOT NULL DEFAULT 0,
			merged_e INTEGER NOT NULL DEFAULT 0,
			merged_s INTEGER NOT NULL DEFAULT 0,
			merged_w INTEGER NOT NULL DEFAULT 0,
			road_removed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (world, x, y)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plots_owner ON plots(world, owner);`,
		`CREATE TABLE IF NOT EXISTS plot_access (
			world TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			player TEXT NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (world, x, y, player, kind)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// Get loads one plot. ok is false when no record exists.
func (s *Store) Get(world string, id grid.PlotID) (*grid.Plot, bool, error) {
	p := &grid.Plot{ID: id, World: world, Trusted: map[string]struct{}{}, Denied: map[string]struct{}{}}
	var counts, mn, me, ms, mw int
	err := s.db.QueryRow(
		`SELECT owner, counts_toward_max, merged_n, merged_e, merged_s, merged_w
		 FROM plots WHERE world = ? AND x = ? AND y = ?`,
		world, id.X, id.Y,
	).Scan(&p.Owner, &counts, &mn, &me, &ms, &mw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p.CountsTowardMax = counts != 0
	p.Merged = [4]bool{mn != 0, me != 0, ms != 0, mw != 0}
	if err := s.loadAccess(p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *Store) loadAccess(p *grid.Plot) error {
	rows, err := s.db.Query(
		`SELECT player, kind FROM plot_access WHERE world = ? AND x = ? AND y = ?`,
		p.World, p.ID.X, p.ID.Y,
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var player, kind string
		if err := rows.Scan(&player, &kind); err != nil {
			return err
		}
		switch kind {
		case "trusted":
			p.Trusted[player] = struct{}{}
		case "denied":
			p.Denied[player] = struct{}{}
		}
	}
	return rows.Err()
}

// AllForWorld returns every plot record of one world keyed by id. Access
// lists are not populated here; callers needing them use Get.
func (s *Store) AllForWorld(world string) (map[grid.PlotID]*grid.Plot, error) {
	rows, err := s.db.Query(
		`SELECT x, y, owner, counts_toward_max, merged_n, merged_e, merged_s, merged_w
		 FROM plots WHERE world = ?`, world)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[grid.PlotID]*grid.Plot{}
	for rows.Next() {
		p := &grid.Plot{World: world, Trusted: map[string]struct{}{}, Denied: map[string]struct{}{}}
		var counts, mn, me, ms, mw int
		if err := rows.Scan(&p.ID.X, &p.ID.Y, &p.Owner, &counts, &mn, &me, &ms, &mw); err != nil {
			return nil, err
		}
		p.CountsTowardMax = counts != 0
		p.Merged = [4]bool{mn != 0, me != 0, ms != 0, mw != 0}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// AllForOwner returns the plots a player owns in one world.
func (s *Store) AllForOwner(world, player string) ([]*grid.Plot, error) {
	if player == "" {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT x, y, counts_toward_max, merged_n, merged_e, merged_s, merged_w
		 FROM plots WHERE world = ? AND owner = ?`, world, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*grid.Plot
	for rows.Next() {
		p := &grid.Plot{World: world, Owner: player, Trusted: map[string]struct{}{}, Denied: map[string]struct{}{}}
		var counts, mn, me, ms, mw int
		if err := rows.Scan(&p.ID.X, &p.ID.Y, &counts, &mn, &me, &ms, &mw); err != nil {
			return nil, err
		}
		p.CountsTowardMax = counts != 0
		p.Merged = [4]bool{mn != 0, me != 0, ms != 0, mw != 0}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Put upserts one plot record and its access lists.
func (s *Store) Put(p *grid.Plot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := putPlotTx(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func putPlotTx(tx *sql.Tx, p *grid.Plot) error {
	counts := 0
	if p.CountsTowardMax {
		counts = 1
	}
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	_, err := tx.Exec(
		`INSERT INTO plots (world, x, y, owner, counts_toward_max, merged_n, merged_e, merged_s, merged_w)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (world, x, y) DO UPDATE SET
			owner = excluded.owner,
			counts_toward_max = excluded.counts_toward_max,
			merged_n = excluded.merged_n,
			merged_e = excluded.merged_e,
			merged_s = excluded.merged_s,
			merged_w = excluded.merged_w`,
		p.World, p.ID.X, p.ID.Y, p.Owner, counts,
		b(p.Merged[grid.North]), b(p.Merged[grid.East]), b(p.Merged[grid.South]), b(p.Merged[grid.West]),
	)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM plot_access WHERE world = ? AND x = ? AND y = ?`,
		p.World, p.ID.X, p.ID.Y,
	); err != nil {
		return err
	}
	for player := range p.Trusted {
		if _, err := tx.Exec(
			`INSERT INTO plot_access (world, x, y, player, kind) VALUES (?, ?, ?, ?, 'trusted')`,
			p.World, p.ID.X, p.ID.Y, player,
		); err != nil {
			return err
		}
	}
	for player := range p.Denied {
		if _, err := tx.Exec(
			`INSERT INTO plot_access (world, x, y, player, kind) VALUES (?, ?, ?, ?, 'denied')`,
			p.World, p.ID.X, p.ID.Y, player,
		); err != nil {
			return err
		}
	}
	return nil
}
