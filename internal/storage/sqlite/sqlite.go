// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateMember inserts a new member into the database.
func (s *Store) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		member.ID, member.Name, member.Email, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *Store) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM members WHERE id = ?",
		id,
	).Scan(&member.ID, &member.Name, &member.Email, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Member not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// MembersByIDs retrieves multiple members by their IDs.
// Returns a map of member ID to Member. Members that don't exist are
// omitted from the result.
func (s *Store) MembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error) {
	if len(ids) == 0 {
		return make(map[string]*models.Member), nil
	}

	query := "SELECT id, name, email, created_at FROM members WHERE id IN (?" +
		repeatPlaceholder(len(ids)-1) + ")"

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get members by IDs: %w", err)
	}
	defer rows.Close()

	members := make(map[string]*models.Member)
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.Name, &member.Email, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members[member.ID] = member
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// ListMembers returns all members ordered by name.
func (s *Store) ListMembers(ctx context.Context) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM members ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.Name, &member.Email, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += ", ?"
	}
	return result
}
