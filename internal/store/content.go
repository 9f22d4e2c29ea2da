// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"scienceheaven/internal/models"
)

// contentColumns is the scan list shared by every content query.
const contentColumns = `id, title, excerpt, body, category, type, author, tags,
       video_url, featured_image, published, created_at, updated_at`

// ContentStore handles all content-related database operations.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// scanContent reads one content row. Tags are stored as JSONB and decoded
// into a string slice.
func scanContent(row interface{ Scan(...any) error }) (*models.Content, error) {
	c := &models.Content{}
	var tags []byte
	err := row.Scan(
		&c.ID, &c.Title, &c.Excerpt, &c.Body, &c.Category, &c.Kind,
		&c.Author, &tags, &c.VideoURL, &c.FeaturedImage, &c.Published,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return c, nil
}

// encodeTags serializes a tag list for the JSONB column. A nil slice is
// stored as an empty array.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return b, nil
}

// ListPublic returns published items matching the given filters. All active
// conditions are AND'd together and published = TRUE is always one of them.
// Items sharing an identical created_at have unspecified relative order —
// there is no secondary sort key.
func (s *ContentStore) ListPublic(ctx context.Context, f *models.ContentFilters) ([]models.Content, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	conditions := []string{"published = TRUE"}
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR excerpt ILIKE $%d OR author ILIKE $%d)", n, n, n))
	}
	if f.HasCategory() {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.HasKind() {
		args = append(args, f.Kind)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	order := "created_at DESC"
	if f.Sort == models.SortOldest {
		order = "created_at ASC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM content WHERE %s ORDER BY %s",
		contentColumns, strings.Join(conditions, " AND "), order,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list public content: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

// ListAll returns every content item regardless of published state, newest
// first. Only the authorized admin listing path uses it.
func (s *ContentStore) ListAll(ctx context.Context) ([]models.Content, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM content ORDER BY created_at DESC", contentColumns))
	if err != nil {
		return nil, fmt.Errorf("list all content: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

func collectContent(rows *sql.Rows) ([]models.Content, error) {
	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a content item by id with no published-state
// restriction — the public detail route relies on this asymmetry with
// ListPublic. Returns nil if not found.
func (s *ContentStore) FindByID(ctx context.Context, id int) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT %s FROM content WHERE id = $1", contentColumns), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// Create inserts a new content item and returns it with the generated id
// and timestamps. Published defaults to true when unspecified.
func (s *ContentStore) Create(ctx context.Context, in *models.ContentInput) (*models.Content, error) {
	tags, err := encodeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	c, err := scanContent(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		INSERT INTO content (title, excerpt, body, category, type, author, tags,
		                     video_url, featured_image, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, contentColumns),
		in.Title, in.Excerpt, in.Body, in.Category, in.Kind, in.Author,
		tags, in.VideoURL, in.FeaturedImage, published,
	))
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return c, nil
}

// Update merges the supplied fields into an existing item and refreshes
// updated_at. Nil patch fields keep their current value. Returns
// sql.ErrNoRows wrapped if the id does not exist.
func (s *ContentStore) Update(ctx context.Context, id int, p *models.ContentPatch) (*models.Content, error) {
	var tags []byte
	if p.Tags != nil {
		b, err := encodeTags(p.Tags)
		if err != nil {
			return nil, err
		}
		tags = b
	}

	c, err := scanContent(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE content SET
			title          = COALESCE($1, title),
			excerpt        = COALESCE($2, excerpt),
			body           = COALESCE($3, body),
			category       = COALESCE($4, category),
			type           = COALESCE($5, type),
			author         = COALESCE($6, author),
			tags           = COALESCE($7, tags),
			video_url      = COALESCE($8, video_url),
			featured_image = COALESCE($9, featured_image),
			published      = COALESCE($10, published),
			updated_at     = NOW()
		WHERE id = $11
		RETURNING %s`, contentColumns),
		p.Title, p.Excerpt, p.Body, p.Category, p.Kind, p.Author,
		tags, p.VideoURL, p.FeaturedImage, p.Published, id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update content %d: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return c, nil
}

// Delete removes a content item by id. Deleting an absent id is not an
// error, per relational delete semantics.
func (s *ContentStore) Delete(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// Count returns the number of content items.
func (s *ContentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return count, nil
}
