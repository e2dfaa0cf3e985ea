package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"TrendSentinel/internal/model"
)

// SQLiteStore persists sessions, messages, and analyses to SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so HTTP reads don't block scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id          TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL,
			keyword     TEXT NOT NULL,
			result_json TEXT NOT NULL,
			summary     TEXT,
			report_path TEXT,
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_keyword ON analyses(keyword, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) CreateSession() (*model.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &model.ChatSession{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO sessions (id, created_at) VALUES (?,?)`,
		session.ID, session.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *SQLiteStore) GetSession(id string) (*model.ChatSession, error) {
	var session model.ChatSession
	var createdAt int64
	err := s.db.QueryRow(`SELECT id, created_at FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = time.Unix(createdAt, 0)
	return &session, nil
}

func (s *SQLiteStore) AppendMessage(sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO messages (id, session_id, role, content, created_at) VALUES (?,?,?,?,?)`,
		uuid.NewString(), sessionID, role, content, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) MessagesBySession(sessionID string) ([]model.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY created_at`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.Unix(0, createdAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *SQLiteStore) SaveAnalysis(rec *model.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO analyses (id, session_id, keyword, result_json, summary, report_path, created_at) VALUES (?,?,?,?,?,?,?)`,
		rec.ID, rec.SessionID, rec.Keyword, rec.ResultJSON, rec.Summary, rec.ReportPath, rec.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAnalysis(id string) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var createdAt int64
	err := s.db.QueryRow(
		`SELECT id, session_id, keyword, result_json, summary, report_path, created_at FROM analyses WHERE id = ?`,
		id).Scan(&rec.ID, &rec.SessionID, &rec.Keyword, &rec.ResultJSON, &rec.Summary, &rec.ReportPath, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0)
	return &rec, nil
}

func (s *SQLiteStore) RecentAnalyses(keyword string, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, keyword, result_json, summary, report_path, created_at
		 FROM analyses WHERE keyword = ? ORDER BY created_at DESC LIMIT ?`,
		keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var recs []model.AnalysisRecord
	for rows.Next() {
		var rec model.AnalysisRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Keyword, &rec.ResultJSON, &rec.Summary, &rec.ReportPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
