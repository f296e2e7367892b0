// ABOUTME: SQLite-backed article store implementation
// ABOUTME: Provides filtered scans, single-record fetch, upsert, and dual-key delete

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"legacy-updates-api/core/domain"
	coreerrors "legacy-updates-api/core/errors"
)

// Pool limits. Callers fail fast through the per-operation timeout instead of
// queueing indefinitely when the pool is exhausted.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	connMaxIdleTime = 5 * time.Minute
	opTimeout       = 5 * time.Second
)

// summaryColumns excludes the heavy body fields from list scans
const summaryColumns = "seq, id, title, subtitle, description, image_url, secondary_image, tag, date, version, is_featured"

// fullColumns adds the body fields for single-record fetches
const fullColumns = summaryColumns + ", full_content, raw_blocks"

// Client implements the ArticleStorage interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
}

// NewClient opens (or creates) the article database at filePath
func NewClient(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "updates.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
	}

	if err := client.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the articles table if it doesn't exist.
// seq is the store-assigned surrogate key and the newest-first ordering key.
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			subtitle TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			secondary_image TEXT NOT NULL DEFAULT '',
			tag TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			is_featured INTEGER NOT NULL DEFAULT 0,
			full_content TEXT NOT NULL DEFAULT '',
			raw_blocks TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title COLLATE NOCASE);
	`

	_, err := c.db.Exec(query)
	return err
}

// Find returns summary projections matching the filter, newest-first
func (c *Client) Find(ctx context.Context, filter domain.Filter, skip, limit int) ([]domain.ArticleSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	where, params := buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM articles%s ORDER BY seq DESC LIMIT ? OFFSET ?",
		summaryColumns, where,
	)
	params = append(params, limit, skip)

	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, transient("find", err)
	}
	defer rows.Close()

	summaries := make([]domain.ArticleSummary, 0, limit)
	for rows.Next() {
		var s domain.ArticleSummary
		var featured int
		err := rows.Scan(
			&s.Seq, &s.ID, &s.Title, &s.Subtitle, &s.Description,
			&s.ImageURL, &s.SecondaryImage, &s.Tag, &s.Date, &s.Version, &featured,
		)
		if err != nil {
			return nil, transient("find", err)
		}
		s.IsFeatured = featured != 0
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, transient("find", err)
	}

	return summaries, nil
}

// Count returns the number of articles matching the filter
func (c *Client) Count(ctx context.Context, filter domain.Filter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	where, params := buildFilter(filter)
	query := "SELECT COUNT(*) FROM articles" + where

	var count int
	if err := c.db.QueryRowContext(ctx, query, params...).Scan(&count); err != nil {
		return 0, transient("count", err)
	}

	return count, nil
}

// FindOne returns the full projection for the given application id
func (c *Client) FindOne(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = ?", fullColumns)
	article, err := scanArticle(c.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	if err != nil {
		return nil, transient("findOne", err)
	}

	return article, nil
}

// Upsert merges the patch into the record with the given id, creating it if
// absent. The read and write run in one transaction so the merge is atomic.
func (c *Client) Upsert(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, transient("upsert", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = ?", fullColumns)
	existing, err := scanArticle(tx.QueryRowContext(ctx, query, id))

	created := false
	var article *domain.Article

	switch err {
	case nil:
		patch.Apply(existing)
		if err := c.updateRow(ctx, tx, existing); err != nil {
			return nil, false, transient("upsert", err)
		}
		article = existing
	case sql.ErrNoRows:
		created = true
		article = &domain.Article{ID: id}
		patch.Apply(article)
		seq, err := c.insertRow(ctx, tx, article)
		if err != nil {
			return nil, false, transient("upsert", err)
		}
		article.Seq = seq
	default:
		return nil, false, transient("upsert", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, transient("upsert", err)
	}

	return article, created, nil
}

// Update merges the patch into an existing record. The existence check and
// the write share one transaction, so a concurrent delete can never turn the
// update into an insert; unknown ids report NotFound.
func (c *Client) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, transient("update", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT %s FROM articles WHERE id = ?", fullColumns)
	existing, err := scanArticle(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	if err != nil {
		return nil, transient("update", err)
	}

	patch.Apply(existing)
	if err := c.updateRow(ctx, tx, existing); err != nil {
		return nil, transient("update", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, transient("update", err)
	}

	return existing, nil
}

// DeleteByEitherKey deletes by application id, retrying by surrogate key when
// nothing matched and the key parses as one. Early records were only
// addressable by surrogate key, so deletes must fall back.
func (c *Client) DeleteByEitherKey(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := c.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", key)
	if err != nil {
		return 0, transient("delete", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, transient("delete", err)
	}

	if deleted == 0 {
		if seq, ok := parseSurrogateKey(key); ok {
			res, err := c.db.ExecContext(ctx, "DELETE FROM articles WHERE seq = ?", seq)
			if err != nil {
				return 0, transient("delete", err)
			}
			deleted, err = res.RowsAffected()
			if err != nil {
				return 0, transient("delete", err)
			}
		}
	}

	return deleted, nil
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// insertRow inserts a new article and returns its surrogate key
func (c *Client) insertRow(ctx context.Context, tx *sql.Tx, a *domain.Article) (int64, error) {
	blocks, err := marshalBlocks(a.RawBlocks)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO articles (id, title, subtitle, description, image_url, secondary_image, tag, date, version, is_featured, full_content, raw_blocks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Subtitle, a.Description, a.ImageURL, a.SecondaryImage,
		string(a.Tag), a.Date, a.Version, boolToInt(a.IsFeatured), a.FullContent, blocks,
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// updateRow persists the merged article over its existing row
func (c *Client) updateRow(ctx context.Context, tx *sql.Tx, a *domain.Article) error {
	blocks, err := marshalBlocks(a.RawBlocks)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, subtitle = ?, description = ?, image_url = ?, secondary_image = ?, tag = ?, date = ?, version = ?, is_featured = ?, full_content = ?, raw_blocks = ?
		WHERE seq = ?`,
		a.Title, a.Subtitle, a.Description, a.ImageURL, a.SecondaryImage,
		string(a.Tag), a.Date, a.Version, boolToInt(a.IsFeatured), a.FullContent, blocks,
		a.Seq,
	)
	return err
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanArticle reads a full-projection row into a domain article
func scanArticle(row rowScanner) (*domain.Article, error) {
	var a domain.Article
	var featured int
	var blocks sql.NullString

	err := row.Scan(
		&a.Seq, &a.ID, &a.Title, &a.Subtitle, &a.Description,
		&a.ImageURL, &a.SecondaryImage, &a.Tag, &a.Date, &a.Version, &featured,
		&a.FullContent, &blocks,
	)
	if err != nil {
		return nil, err
	}

	a.IsFeatured = featured != 0
	if blocks.Valid && blocks.String != "" {
		if err := json.Unmarshal([]byte(blocks.String), &a.RawBlocks); err != nil {
			return nil, fmt.Errorf("corrupt raw_blocks for %s: %w", a.ID, err)
		}
	}

	return &a, nil
}

// buildFilter renders the WHERE clause for a list filter.
// The search pattern escapes LIKE wildcards so user input stays a literal
// substring; SQLite LIKE is case-insensitive for ASCII.
func buildFilter(filter domain.Filter) (string, []interface{}) {
	if filter.TitleSearch == "" {
		return "", nil
	}

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter.TitleSearch)
	return ` WHERE title LIKE ? ESCAPE '\'`, []interface{}{"%" + escaped + "%"}
}

// parseSurrogateKey reports whether the key is syntactically a surrogate key
func parseSurrogateKey(key string) (int64, bool) {
	seq, err := strconv.ParseInt(key, 10, 64)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}

// marshalBlocks serializes raw blocks to JSON, NULL when absent
func marshalBlocks(blocks []domain.Block) (interface{}, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// boolToInt converts a bool to its SQLite integer representation
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// transient wraps a database failure as a transient infrastructure error so
// callers never mask it as not-found
func transient(op string, err error) error {
	return &coreerrors.TransientError{
		Op:      "sqlite." + op,
		Message: "article store operation failed",
		Err:     err,
	}
}
