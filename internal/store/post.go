// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations, including the
// post_categories association rows. Every mutation that touches
// associations runs in a single transaction.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, cover_image_key, created_at, updated_at`

// scanPost scans a post row from the result set.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(&p.ID, &p.Title, &p.Content, &p.CoverImageKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Categories = []models.CategoryRef{}
	return &p, nil
}

// Create inserts a new post and exactly one association row per category id
// as a single all-or-nothing transaction. A category id that does not exist
// aborts the whole transaction: no post row and no association rows remain.
func (s *PostStore) Create(title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error) {
	if title == "" {
		return nil, models.NewValidation("title is required")
	}
	if content == "" {
		return nil, models.NewValidation("content is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO posts (title, content, cover_image_key)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns,
		title, content, coverImageKey,
	)
	post, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := insertAssociations(tx, post.ID, categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}

	return s.attachCategories(post)
}

// Update modifies a post in place and replaces its entire association set
// with the supplied one, computing the symmetric difference so unchanged
// rows are left alone. Runs as a single transaction and sets updated_at.
func (s *PostStore) Update(id uuid.UUID, title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error) {
	if title == "" {
		return nil, models.NewValidation("title is required")
	}
	if content == "" {
		return nil, models.NewValidation("content is required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		UPDATE posts SET
			title = $1, content = $2, cover_image_key = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+postColumns,
		title, content, coverImageKey, id,
	)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFound("post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	// Current association set, read inside the transaction.
	current := map[uuid.UUID]bool{}
	rows, err := tx.Query(`SELECT category_id FROM post_categories WHERE post_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("load associations: %w", err)
	}
	for rows.Next() {
		var cid uuid.UUID
		if err := rows.Scan(&cid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan association: %w", err)
		}
		current[cid] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load associations: %w", err)
	}

	wanted := map[uuid.UUID]bool{}
	for _, cid := range categoryIDs {
		wanted[cid] = true
	}

	// Remove rows no longer wanted.
	for cid := range current {
		if wanted[cid] {
			continue
		}
		if _, err := tx.Exec(
			`DELETE FROM post_categories WHERE post_id = $1 AND category_id = $2`, id, cid,
		); err != nil {
			return nil, fmt.Errorf("remove association %s: %w", cid, err)
		}
	}

	// Insert rows newly wanted.
	var added []uuid.UUID
	for _, cid := range categoryIDs {
		if !current[cid] {
			added = append(added, cid)
		}
	}
	if err := insertAssociations(tx, id, added); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}

	return s.attachCategories(post)
}

// Delete removes a post and all its association rows in one transaction.
func (s *PostStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post associations: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if affected == 0 {
		return models.NewNotFound("post", id)
	}

	return tx.Commit()
}

// FindByID retrieves a post with its resolved category list.
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return s.attachCategories(post)
}

// List returns all posts newest-first with resolved category lists.
// Categories for all posts are loaded in one query to avoid N+1.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refRows, err := s.db.Query(`
		SELECT pc.post_id, c.id, c.name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list post categories: %w", err)
	}
	defer refRows.Close()

	refs := map[uuid.UUID][]models.CategoryRef{}
	for refRows.Next() {
		var postID uuid.UUID
		var ref models.CategoryRef
		if err := refRows.Scan(&postID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		refs[postID] = append(refs[postID], ref)
	}
	if err := refRows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if r, ok := refs[items[i].ID]; ok {
			items[i].Categories = r
		}
	}
	return items, nil
}

// attachCategories loads the resolved category refs for a post.
func (s *PostStore) attachCategories(post *models.Post) (*models.Post, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`, post.ID)
	if err != nil {
		return nil, fmt.Errorf("load post categories: %w", err)
	}
	defer rows.Close()

	post.Categories = []models.CategoryRef{}
	for rows.Next() {
		var ref models.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		post.Categories = append(post.Categories, ref)
	}
	return post, rows.Err()
}

// insertAssociations inserts one association row per category id inside the
// caller's transaction. Duplicate ids in the input are collapsed. A foreign
// key violation identifies the offending category id.
func insertAssociations(tx *sql.Tx, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("prepare association insert: %w", err)
	}
	defer stmt.Close()

	seen := map[uuid.UUID]bool{}
	for _, cid := range categoryIDs {
		if seen[cid] {
			continue
		}
		seen[cid] = true

		if _, err := stmt.Exec(postID, cid); err != nil {
			if isForeignKeyViolation(err) {
				return models.NewInvalidReference(cid)
			}
			return fmt.Errorf("insert association %s: %w", cid, err)
		}
	}
	return nil
}
