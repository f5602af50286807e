package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"protos.app/smartlife-api/pkg/log"
)

// ErrStoreUnavailable marks connection or query failures so the API layer
// can distinguish them from empty result sets (which are not errors).
var ErrStoreUnavailable = errors.New("knowledge store unavailable")

// GuestUserName is returned for unknown user ids. Unknown users degrade to
// anonymous framing, never to a failure.
const GuestUserName = "Guest"

// Store is the read-only access contract over the master tables.
type Store interface {
	ListCategories() ([]Category, error)
	ListPresetQuestions(categoryID string) ([]PresetQuestion, error)
	GetKnowledgeDetails(knowledgeID int64) ([]KnowledgeDetail, error)
	GetUserName(userID string) (string, error)
	CategoryCount() (int, error)
}

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a pooled connection to the database. An unreachable
// database is not fatal: the pool is kept and every query surfaces
// ErrStoreUnavailable until the database comes back.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		log.Warnf("database is unreachable, continuing in degraded mode: %v", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ListCategories returns all categories ordered by sort_order ascending.
func (s *PostgresStore) ListCategories() ([]Category, error) {
	rows, err := s.db.Query("SELECT category_id, category_name FROM m_categories ORDER BY sort_order")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w: %w", ErrStoreUnavailable, err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListPresetQuestions returns the preset questions of one category. An
// unknown category yields an empty list, not an error.
func (s *PostgresStore) ListPresetQuestions(categoryID string) ([]PresetQuestion, error) {
	rows, err := s.db.Query(
		"SELECT preset_question, knowledge_id FROM m_knowledge_base WHERE category_id = $1 ORDER BY knowledge_id",
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preset questions: %w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	questions := []PresetQuestion{}
	for rows.Next() {
		var q PresetQuestion
		if err := rows.Scan(&q.Question, &q.KnowledgeID); err != nil {
			return nil, fmt.Errorf("failed to scan preset question row: %w: %w", ErrStoreUnavailable, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetKnowledgeDetails returns the fact rows of one knowledge entry in
// sort_order. An empty result means the entry does not exist or has no
// facts; the caller decides what to do with that.
func (s *PostgresStore) GetKnowledgeDetails(knowledgeID int64) ([]KnowledgeDetail, error) {
	query := `
        SELECT
            kb.success_title,
            kb.preset_question,
            kd.fact_type,
            kd.fact_text,
            kd.experience_flag
        FROM m_knowledge_details kd
        JOIN m_knowledge_base kb ON kd.knowledge_id = kb.knowledge_id
        WHERE kd.knowledge_id = $1
        ORDER BY kd.sort_order
    `
	rows, err := s.db.Query(query, knowledgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge details: %w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var details []KnowledgeDetail
	for rows.Next() {
		var d KnowledgeDetail
		if err := rows.Scan(&d.SuccessTitle, &d.PresetQuestion, &d.FactType, &d.FactText, &d.ExperienceFlag); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge detail row: %w: %w", ErrStoreUnavailable, err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetUserName resolves a user's display name, falling back to GuestUserName
// when the user does not exist.
func (s *PostgresStore) GetUserName(userID string) (string, error) {
	var name string
	err := s.db.QueryRow("SELECT user_name FROM m_users WHERE user_id = $1", userID).Scan(&name)
	if err == sql.ErrNoRows {
		return GuestUserName, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query user: %w: %w", ErrStoreUnavailable, err)
	}
	return name, nil
}

// CategoryCount reports how many categories exist, used by the DB debug
// endpoint to verify connectivity end to end.
func (s *PostgresStore) CategoryCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM m_categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w: %w", ErrStoreUnavailable, err)
	}
	return count, nil
}
