package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/qamus-labs/rootscan-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AnnotationStore = (*Store)(nil)

// Store is a SQLite-backed annotation store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.rootscan/data/annotations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".rootscan", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "annotations.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_annotations.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or replaces the annotation for a root. A replaced row keeps
// its original position, so List order stays stable across re-runs.
func (s *Store) Save(ctx context.Context, a domain.Annotation) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO annotations (
			root, run_id, verse_count,
			lexicon, lexicon_gloss, explanation, synonyms, antonyms,
			semantic_contrast, context_analysis, summary,
			prompt_tokens, completion_tokens, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(root) DO UPDATE SET
			run_id = excluded.run_id,
			verse_count = excluded.verse_count,
			lexicon = excluded.lexicon,
			lexicon_gloss = excluded.lexicon_gloss,
			explanation = excluded.explanation,
			synonyms = excluded.synonyms,
			antonyms = excluded.antonyms,
			semantic_contrast = excluded.semantic_contrast,
			context_analysis = excluded.context_analysis,
			summary = excluded.summary,
			prompt_tokens = excluded.prompt_tokens,
			completion_tokens = excluded.completion_tokens,
			created_at = excluded.created_at
	`, a.Root, a.RunID, a.VerseCount,
		a.Sections.Lexicon, a.Sections.LexiconGloss, a.Sections.Explanation,
		a.Sections.Synonyms, a.Sections.Antonyms,
		a.Sections.SemanticContrast, a.Sections.ContextAnalysis, a.Sections.Summary,
		a.PromptTokens, a.CompletionTokens, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving annotation: %w", err)
	}
	return nil
}

// Processed returns the set of roots that already have annotations.
func (s *Store) Processed(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT root FROM annotations")
	if err != nil {
		return nil, fmt.Errorf("querying processed roots: %w", err)
	}
	defer rows.Close()

	processed := make(map[string]bool)
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("scanning root: %w", err)
		}
		processed[root] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating processed roots: %w", err)
	}
	return processed, nil
}

// List returns all stored annotations in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Annotation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT root, run_id, verse_count,
			lexicon, lexicon_gloss, explanation, synonyms, antonyms,
			semantic_contrast, context_analysis, summary,
			prompt_tokens, completion_tokens, created_at
		FROM annotations
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation
	for rows.Next() {
		var a domain.Annotation
		if err := rows.Scan(
			&a.Root, &a.RunID, &a.VerseCount,
			&a.Sections.Lexicon, &a.Sections.LexiconGloss, &a.Sections.Explanation,
			&a.Sections.Synonyms, &a.Sections.Antonyms,
			&a.Sections.SemanticContrast, &a.Sections.ContextAnalysis, &a.Sections.Summary,
			&a.PromptTokens, &a.CompletionTokens, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		annotations = append(annotations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return annotations, nil
}
