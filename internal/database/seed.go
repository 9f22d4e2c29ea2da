package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development content.
// It inserts a handful of published and draft items if the content table is
// empty. Admin bootstrap is not seeded — the setup endpoint owns that.
func Seed(db *sql.DB) error {
	// Check if any content exists already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM content").Scan(&count); err != nil {
		return fmt.Errorf("seed check content: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	items := []struct {
		title, excerpt, body, category, kind, author, tags string
		videoURL                                           *string
		published                                          bool
	}{
		{
			title:    "Quantum Entanglement Explained",
			excerpt:  "What Einstein called spooky action at a distance.",
			body:     "Two particles can share a state no matter how far apart they are...",
			category: "physics", kind: "article", author: "Dana Petrescu",
			tags: `["quantum","entanglement"]`, published: true,
		},
		{
			title:    "The Chemistry of Fireworks",
			excerpt:  "Why strontium burns red and copper burns blue.",
			body:     "Metal salts dominate the color palette of every fireworks show...",
			category: "chemistry", kind: "article", author: "Radu Ionescu",
			tags: `["combustion","colors"]`, published: true,
		},
		{
			title:    "Touring the Orion Nebula",
			excerpt:  "A guided flight through a stellar nursery.",
			body:     "",
			category: "astronomy", kind: "video", author: "Ana Vladescu",
			tags: `["nebula","hubble"]`, videoURL: strPtr("https://videos.example.com/orion-nebula"),
			published: true,
		},
		{
			title:    "CRISPR Beyond the Hype",
			excerpt:  "Where gene editing actually stands today.",
			body:     "Draft in progress.",
			category: "biology", kind: "article", author: "Dana Petrescu",
			tags: `[]`, published: false,
		},
	}

	for _, it := range items {
		_, err := db.Exec(`
			INSERT INTO content (title, excerpt, body, category, type, author, tags, video_url, published)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, it.title, it.excerpt, it.body, it.category, it.kind, it.author, it.tags, it.videoURL, it.published)
		if err != nil {
			return fmt.Errorf("seed insert content: %w", err)
		}
	}

	slog.Info("database seeded with development content", "items", len(items))
	return nil
}

func strPtr(s string) *string { return &s }
