// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
)

// Category is the closed set of subject areas a content item belongs to.
type Category string

const (
	CategoryPhysics    Category = "physics"
	CategoryChemistry  Category = "chemistry"
	CategoryBiology    Category = "biology"
	CategoryAstronomy  Category = "astronomy"
	CategoryTechnology Category = "technology"
)

// Kind distinguishes articles from videos in the unified content table.
// It is serialized as "type" on the wire.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
)

// Sort orders a content listing by creation date.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
)

// Content represents a publishable article or video. Both kinds share the
// same table, differentiated by the Kind field.
type Content struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Body          *string   `json:"body,omitempty"`
	Category      Category  `json:"category"`
	Kind          Kind      `json:"type"`
	Author        string    `json:"author"`
	Tags          []string  `json:"tags"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsPublished returns true if the item is visible to unauthenticated callers.
func (c *Content) IsPublished() bool {
	return c.Published
}

// ValidCategory reports whether v is one of the closed category set.
func ValidCategory(v Category) bool {
	switch v {
	case CategoryPhysics, CategoryChemistry, CategoryBiology, CategoryAstronomy, CategoryTechnology:
		return true
	}
	return false
}

// ValidKind reports whether v is article or video.
func ValidKind(v Kind) bool {
	return v == KindArticle || v == KindVideo
}

// ValidSort reports whether v is newest or oldest.
func ValidSort(v Sort) bool {
	return v == SortNewest || v == SortOldest
}
