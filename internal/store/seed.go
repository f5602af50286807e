package store

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"protos.app/smartlife-api/pkg/log"
)

const schema = `
    CREATE TABLE m_users (
        user_id TEXT PRIMARY KEY,
        user_name TEXT NOT NULL,
        password_hash TEXT NOT NULL,
        plan_type TEXT DEFAULT 'free' NOT NULL
    );

    CREATE TABLE m_categories (
        category_id TEXT PRIMARY KEY,
        category_name TEXT NOT NULL,
        sort_order INTEGER
    );

    CREATE TABLE m_knowledge_base (
        knowledge_id INTEGER PRIMARY KEY,
        category_id TEXT NOT NULL,
        preset_question TEXT NOT NULL,
        success_title TEXT,
        FOREIGN KEY (category_id) REFERENCES m_categories (category_id)
    );

    CREATE TABLE m_knowledge_details (
        detail_id SERIAL PRIMARY KEY,
        knowledge_id INTEGER NOT NULL,
        fact_type TEXT NOT NULL,
        fact_text TEXT NOT NULL,
        experience_flag TEXT DEFAULT 'POSITIVE' NOT NULL,
        sort_order INTEGER,
        FOREIGN KEY (knowledge_id) REFERENCES m_knowledge_base (knowledge_id)
    );

    CREATE TABLE t_user_goals (
        user_goal_id SERIAL PRIMARY KEY,
        user_id TEXT NOT NULL,
        category_id TEXT NOT NULL,
        goal_key TEXT NOT NULL,
        status TEXT DEFAULT 'not_started' NOT NULL,
        FOREIGN KEY (user_id) REFERENCES m_users (user_id),
        FOREIGN KEY (category_id) REFERENCES m_categories (category_id)
    );
`

// seedFiles maps each CSV seed file to its target table and the columns to
// load, in CSV header order.
var seedFiles = []struct {
	file    string
	table   string
	columns []string
}{
	{"data_users.csv", "m_users", []string{"user_id", "user_name", "password_hash"}},
	{"data_categories.csv", "m_categories", []string{"category_id", "category_name", "sort_order"}},
	{"data_knowledge_base.csv", "m_knowledge_base", []string{"knowledge_id", "category_id", "preset_question", "success_title"}},
	{"data_knowledge_details.csv", "m_knowledge_details", []string{"knowledge_id", "fact_type", "fact_text", "experience_flag", "sort_order"}},
}

// Bootstrap creates the schema and loads CSV seed data if the tables do not
// exist yet. It is idempotent: on an already-initialized database it does
// nothing. Seeding runs in one transaction so a half-loaded schema never
// survives.
func (s *PostgresStore) Bootstrap(dataDir string) error {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'm_users')",
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for existing tables: %w: %w", ErrStoreUnavailable, err)
	}
	if exists {
		log.Info("database tables already exist, skipping bootstrap")
		return nil
	}

	log.Info("database tables missing, bootstrapping schema from CSV seed data")
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin bootstrap transaction: %w: %w", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, sf := range seedFiles {
		path := filepath.Join(dataDir, sf.file)
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("seed file %s not found, skipping", path)
			continue
		}
		records, err := parseSeedCSV(f, sf.columns)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := insertSeedRows(tx, sf.table, sf.columns, records); err != nil {
			return fmt.Errorf("failed to seed %s: %w", sf.table, err)
		}
		log.Infof("seeded %d rows into %s from %s", len(records), sf.table, sf.file)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bootstrap: %w", err)
	}
	log.Info("database bootstrap complete")
	return nil
}

// parseSeedCSV reads a headered CSV and returns the requested columns of
// every row, in the order given. Columns missing from the header are an
// error so a malformed seed file fails loudly instead of inserting blanks.
func parseSeedCSV(r io.Reader, columns []string) ([][]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("column %q not found in header %v", col, header)
		}
	}

	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = row[index[col]]
		}
		records = append(records, record)
	}
	return records, nil
}

func insertSeedRows(tx *sql.Tx, table string, columns []string, records [][]string) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		args := make([]interface{}, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row %v: %w", record, err)
		}
	}
	return nil
}
