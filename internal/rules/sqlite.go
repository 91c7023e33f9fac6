package rules

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// SQLiteRepository persists rules in a SQLite database. Declaration order is
// kept in a position column.
type SQLiteRepository struct {
	db  *sql.DB
	tax *schedule.Taxonomy
}

// OpenSQLite opens (or creates) a rules database. Pass ":memory:" for an
// in-memory database.
func OpenSQLite(dsn string, tax *schedule.Taxonomy) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteRepository{db: db, tax: tax}, nil
}

// Close releases the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS override_rules (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			ledger_name TEXT NOT NULL,
			current_group TEXT NOT NULL DEFAULT '',
			target_code TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS keyword_rules (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			pattern TEXT NOT NULL,
			match_type TEXT NOT NULL,
			target_code TEXT NOT NULL,
			priority INTEGER NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS group_rules (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			group_name TEXT NOT NULL,
			parent_group TEXT NOT NULL DEFAULT '',
			target_code TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS validation_rules (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			condition_desc TEXT NOT NULL DEFAULT '',
			action_desc TEXT NOT NULL DEFAULT '',
			message_template TEXT NOT NULL,
			active INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Save replaces every stored rule with the contents of s in one transaction.
func (r *SQLiteRepository) Save(s *Store) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"override_rules", "keyword_rules", "group_rules", "validation_rules"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, o := range s.Overrides() {
		if _, err := tx.Exec(
			`INSERT INTO override_rules (id, position, ledger_name, current_group, target_code, reason, active)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			o.ID, i, o.LedgerName, o.CurrentGroup, o.TargetCode, o.Reason, o.Active,
		); err != nil {
			return fmt.Errorf("insert override %s: %w", o.ID, err)
		}
	}
	for i, k := range s.Keywords() {
		if _, err := tx.Exec(
			`INSERT INTO keyword_rules (id, position, pattern, match_type, target_code, priority, active)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			k.ID, i, k.Pattern, string(k.MatchType), k.TargetCode, k.Priority, k.Active,
		); err != nil {
			return fmt.Errorf("insert keyword %s: %w", k.ID, err)
		}
	}
	for i, g := range s.Groups() {
		if _, err := tx.Exec(
			`INSERT INTO group_rules (id, position, group_name, parent_group, target_code, active)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, i, g.GroupName, g.ParentGroup, g.TargetCode, g.Active,
		); err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
	}
	for i, v := range s.Validations() {
		if _, err := tx.Exec(
			`INSERT INTO validation_rules (id, position, type, severity, condition_desc, action_desc, message_template, active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, i, v.Type, string(v.Severity), v.Condition, v.Action, v.MessageTemplate, v.Active,
		); err != nil {
			return fmt.Errorf("insert validation %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads every stored rule back into a store.
func (r *SQLiteRepository) Load() (*Store, error) {
	var f File

	rows, err := r.db.Query(`SELECT id, ledger_name, current_group, target_code, reason, active
		FROM override_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	for rows.Next() {
		var o model.OverrideRule
		if err := rows.Scan(&o.ID, &o.LedgerName, &o.CurrentGroup, &o.TargetCode, &o.Reason, &o.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan override: %w", err)
		}
		f.Overrides = append(f.Overrides, o)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`SELECT id, pattern, match_type, target_code, priority, active
		FROM keyword_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	for rows.Next() {
		var k model.KeywordRule
		var mt string
		if err := rows.Scan(&k.ID, &k.Pattern, &mt, &k.TargetCode, &k.Priority, &k.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		k.MatchType = model.MatchType(mt)
		f.Keywords = append(f.Keywords, k)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`SELECT id, group_name, parent_group, target_code, active
		FROM group_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	for rows.Next() {
		var g model.GroupRule
		if err := rows.Scan(&g.ID, &g.GroupName, &g.ParentGroup, &g.TargetCode, &g.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		f.Groups = append(f.Groups, g)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`SELECT id, type, severity, condition_desc, action_desc, message_template, active
		FROM validation_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query validations: %w", err)
	}
	for rows.Next() {
		var v model.ValidationRule
		var sev string
		if err := rows.Scan(&v.ID, &v.Type, &sev, &v.Condition, &v.Action, &v.MessageTemplate, &v.Active); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan validation: %w", err)
		}
		v.Severity = model.Severity(sev)
		f.Validations = append(f.Validations, v)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return FromFile(f, r.tax)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate rows: %w", err)
	}
	return rows.Close()
}
