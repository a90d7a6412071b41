package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedPost pairs a sample post with the names of its categories.
type seedPost struct {
	title      string
	content    string
	coverKey   string
	categories []string
}

// Seed populates the database with initial development data: three sample
// categories and three sample posts with category associations. It is a
// no-op if any category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categories := []string{"プログラミング", "技術", "デザイン"}

	posts := []seedPost{
		{
			title:      "Next.jsの基礎",
			content:    "Next.jsは、Reactベースのフルスタックフレームワークです。サーバーサイドレンダリングやスタティックサイトジェネレーションをサポートします。",
			coverKey:   "covers/5f4dcc3b5aa765d61d8327deb882cf99",
			categories: []string{"プログラミング", "技術"},
		},
		{
			title:      "モダンなUIデザインのトレンド",
			content:    "ニューモーフィズム、ダークモード、マイクロインタラクションなど、注目のUIデザイントレンドを紹介します。",
			coverKey:   "covers/098f6bcd4621d373cade4e832627b4f6",
			categories: []string{"デザイン"},
		},
		{
			title:      "TypeScriptとPrismaの組み合わせ",
			content:    "TypeScriptとPrismaを組み合わせることで、型安全なデータベース操作が可能になります。",
			coverKey:   "covers/ad0234829205b9033196ba818f7a872b",
			categories: []string{"プログラミング", "技術"},
		},
	}

	// Seed everything in one transaction so a partial seed is never left behind.
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		var id string
		if err := tx.QueryRow(
			"INSERT INTO categories (name) VALUES ($1) RETURNING id", name,
		).Scan(&id); err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	for _, p := range posts {
		var postID string
		if err := tx.QueryRow(
			"INSERT INTO posts (title, content, cover_image_key) VALUES ($1, $2, $3) RETURNING id",
			p.title, p.content, p.coverKey,
		).Scan(&postID); err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}
		for _, name := range p.categories {
			if _, err := tx.Exec(
				"INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)",
				postID, categoryIDs[name],
			); err != nil {
				return fmt.Errorf("seed associate post %q with %q: %w", p.title, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample catalog data",
		"categories", len(categories),
		"posts", len(posts),
	)

	return nil
}
