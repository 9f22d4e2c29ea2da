// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"scienceheaven/internal/models"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// uniqueTitle tags a title so parallel test runs cannot collide.
func uniqueTitle(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

func mustCreate(t *testing.T, s *ContentStore, in *models.ContentInput) *models.Content {
	t.Helper()
	c, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return c
}

func TestContentCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	title := uniqueTitle("Quantum Leap")
	t.Cleanup(func() { cleanContent(t, db, title) })

	created := mustCreate(t, s, &models.ContentInput{
		Title:    title,
		Excerpt:  strPtr("Spooky action at a distance."),
		Category: models.CategoryPhysics,
		Kind:     models.KindArticle,
		Author:   "Dana Petrescu",
		Tags:     []string{"quantum", "entanglement"},
	})

	if created.ID == 0 {
		t.Error("expected a server-assigned id")
	}
	if !created.Published {
		t.Error("published must default to true")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected server-assigned timestamps")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected content, got nil")
	}
	if found.Title != title {
		t.Errorf("title: got %q, want %q", found.Title, title)
	}
	if len(found.Tags) != 2 || found.Tags[0] != "quantum" {
		t.Errorf("tags: got %v", found.Tags)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must survive the roundtrip unchanged")
	}
}

func TestContentFindByIDAbsent(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	found, err := s.FindByID(context.Background(), -1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for absent id, got %+v", found)
	}
}

func TestContentListPublicHidesUnpublished(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	pubTitle := uniqueTitle("Visible")
	draftTitle := uniqueTitle("Hidden")
	t.Cleanup(func() { cleanContent(t, db, pubTitle, draftTitle) })

	mustCreate(t, s, &models.ContentInput{
		Title: pubTitle, Category: models.CategoryBiology,
		Kind: models.KindArticle, Author: "A",
	})
	draft := mustCreate(t, s, &models.ContentInput{
		Title: draftTitle, Category: models.CategoryBiology,
		Kind: models.KindArticle, Author: "A", Published: boolPtr(false),
	})

	items, err := s.ListPublic(ctx, &models.ContentFilters{})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	for _, it := range items {
		if !it.Published {
			t.Errorf("public listing leaked unpublished item %d", it.ID)
		}
		if it.Title == draftTitle {
			t.Error("public listing leaked the draft")
		}
	}

	// The documented asymmetry: FindByID still returns the draft.
	found, err := s.FindByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID must return unpublished items")
	}
	if found.Published {
		t.Error("draft came back published")
	}

	// ListAll sees both.
	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	var sawDraft bool
	for _, it := range all {
		if it.ID == draft.ID {
			sawDraft = true
		}
	}
	if !sawDraft {
		t.Error("ListAll must include unpublished items")
	}
}

func TestContentListPublicSearch(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	quantum := uniqueTitle("Quantum Leap")
	biology := uniqueTitle("Biology 101")
	t.Cleanup(func() { cleanContent(t, db, quantum, biology) })

	mustCreate(t, s, &models.ContentInput{
		Title: quantum, Category: models.CategoryPhysics,
		Kind: models.KindArticle, Author: "A",
	})
	author := uniqueTitle("Rosalind Franklin")
	mustCreate(t, s, &models.ContentInput{
		Title: biology, Category: models.CategoryBiology,
		Kind: models.KindArticle, Author: author,
	})

	// Case-insensitive substring match.
	items, err := s.ListPublic(ctx, &models.ContentFilters{Search: "qUaNtUm"})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	var sawQuantum, sawBiology bool
	for _, it := range items {
		if it.Title == quantum {
			sawQuantum = true
		}
		if it.Title == biology {
			sawBiology = true
		}
	}
	if !sawQuantum {
		t.Error("search missed the matching title")
	}
	if sawBiology {
		t.Error("search returned a non-matching item")
	}

	// Search also matches the author column.
	items, err = s.ListPublic(ctx, &models.ContentFilters{Search: author})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(items) != 1 || items[0].Title != biology {
		t.Errorf("author search: got %d items", len(items))
	}
}

func TestContentListPublicCategoryAndKind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	article := uniqueTitle("Chem Article")
	video := uniqueTitle("Chem Video")
	t.Cleanup(func() { cleanContent(t, db, article, video) })

	mustCreate(t, s, &models.ContentInput{
		Title: article, Category: models.CategoryChemistry,
		Kind: models.KindArticle, Author: "A",
	})
	mustCreate(t, s, &models.ContentInput{
		Title: video, Category: models.CategoryChemistry,
		Kind: models.KindVideo, Author: "A", VideoURL: strPtr("https://v.example.com/x"),
	})

	items, err := s.ListPublic(ctx, &models.ContentFilters{
		Category: models.CategoryChemistry,
		Kind:     models.KindVideo,
	})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	for _, it := range items {
		if it.Kind != models.KindVideo {
			t.Errorf("kind filter leaked %q", it.Kind)
		}
		if it.Category != models.CategoryChemistry {
			t.Errorf("category filter leaked %q", it.Category)
		}
	}

	// "all" means no restriction.
	items, err = s.ListPublic(ctx, &models.ContentFilters{Category: "all", Kind: "all"})
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	var sawArticle, sawVideo bool
	for _, it := range items {
		if it.Title == article {
			sawArticle = true
		}
		if it.Title == video {
			sawVideo = true
		}
	}
	if !sawArticle || !sawVideo {
		t.Error(`category/type "all" must not restrict the listing`)
	}
}

func TestContentListPublicSort(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	marker := uuid.NewString()[:8]
	titles := []string{"Sort A " + marker, "Sort B " + marker, "Sort C " + marker}
	t.Cleanup(func() { cleanContent(t, db, titles...) })

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]int, len(titles))
	for i, title := range titles {
		c := mustCreate(t, s, &models.ContentInput{
			Title: title, Category: models.CategoryTechnology,
			Kind: models.KindArticle, Author: "A",
		})
		ids[i] = c.ID
		// Pin created_at so the ordering assertion is deterministic.
		if _, err := db.Exec("UPDATE content SET created_at = $1 WHERE id = $2",
			base.Add(time.Duration(i)*time.Hour), c.ID); err != nil {
			t.Fatalf("pin created_at: %v", err)
		}
	}

	ordered := func(f *models.ContentFilters) []int {
		t.Helper()
		items, err := s.ListPublic(ctx, f)
		if err != nil {
			t.Fatalf("ListPublic: %v", err)
		}
		var got []int
		for _, it := range items {
			for _, id := range ids {
				if it.ID == id {
					got = append(got, it.ID)
				}
			}
		}
		return got
	}

	newest := ordered(&models.ContentFilters{Search: marker, Sort: models.SortNewest})
	if len(newest) != 3 || newest[0] != ids[2] || newest[2] != ids[0] {
		t.Errorf("newest: got %v, want [%d %d %d]", newest, ids[2], ids[1], ids[0])
	}

	oldest := ordered(&models.ContentFilters{Search: marker, Sort: models.SortOldest})
	if len(oldest) != 3 || oldest[0] != ids[0] || oldest[2] != ids[2] {
		t.Errorf("oldest: got %v, want [%d %d %d]", oldest, ids[0], ids[1], ids[2])
	}

	// Default sort is newest.
	def := ordered(&models.ContentFilters{Search: marker})
	if len(def) != 3 || def[0] != ids[2] {
		t.Errorf("default sort: got %v, want newest first (%d)", def, ids[2])
	}
}

func TestContentUpdatePartial(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	title := uniqueTitle("Before")
	newTitle := uniqueTitle("After")
	t.Cleanup(func() { cleanContent(t, db, title, newTitle) })

	created := mustCreate(t, s, &models.ContentInput{
		Title: title, Excerpt: strPtr("keep me"),
		Category: models.CategoryAstronomy, Kind: models.KindArticle,
		Author: "Ana", Tags: []string{"keep"},
	})

	updated, err := s.Update(ctx, created.ID, &models.ContentPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("title: got %q, want %q", updated.Title, newTitle)
	}
	// Everything else keeps its pre-update value.
	if updated.Excerpt == nil || *updated.Excerpt != "keep me" {
		t.Error("excerpt changed on a title-only patch")
	}
	if updated.Author != "Ana" {
		t.Error("author changed on a title-only patch")
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "keep" {
		t.Error("tags changed on a title-only patch")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("createdAt must never change after creation")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updatedAt must be refreshed on every mutation")
	}
}

func TestContentUpdateAbsent(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	title := "X"
	_, err := s.Update(context.Background(), -1, &models.ContentPatch{Title: &title})
	if err == nil {
		t.Fatal("expected an error for absent id")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("want sql.ErrNoRows, got %v", err)
	}
}

func TestContentDeleteIdempotent(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)
	ctx := context.Background()

	title := uniqueTitle("Doomed")
	created := mustCreate(t, s, &models.ContentInput{
		Title: title, Category: models.CategoryPhysics,
		Kind: models.KindArticle, Author: "A",
	})

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("item still present after delete")
	}

	// Second delete of the same id must not fail.
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
