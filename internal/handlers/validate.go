package handlers

import (
	"strings"
	"unicode/utf8"

	"scienceheaven/internal/apperror"
	"scienceheaven/internal/models"
)

// Validation limits for content fields, matching the column widths.
const (
	maxTitleLen   = 255
	maxExcerptLen = 1_000
	maxBodyLen    = 100_000
	maxAuthorLen  = 100
	maxURLLen     = 500
)

// validateInput checks a full content submission and returns the first
// violation found. The videoUrl-required-when-video rule lives here, in the
// input contract, rather than as an unchecked convention.
func validateInput(in *models.ContentInput) *apperror.AppError {
	if strings.TrimSpace(in.Title) == "" {
		return apperror.ValidationFailed("title", "Title is required.")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return apperror.ValidationFailed("title", "Title is too long (max 255 characters).")
	}
	if strings.TrimSpace(in.Author) == "" {
		return apperror.ValidationFailed("author", "Author is required.")
	}
	if utf8.RuneCountInString(in.Author) > maxAuthorLen {
		return apperror.ValidationFailed("author", "Author is too long (max 100 characters).")
	}
	if !models.ValidCategory(in.Category) {
		return apperror.ValidationFailed("category", "Category must be one of physics, chemistry, biology, astronomy, technology.")
	}
	if !models.ValidKind(in.Kind) {
		return apperror.ValidationFailed("type", "Type must be article or video.")
	}
	if in.Kind == models.KindVideo && (in.VideoURL == nil || strings.TrimSpace(*in.VideoURL) == "") {
		return apperror.ValidationFailed("videoUrl", "A video URL is required for video content.")
	}
	return validateOptional(in.Excerpt, in.Body, in.VideoURL, in.FeaturedImage)
}

// validatePatch checks the supplied fields of a partial update. Nil fields
// are untouched by the store and therefore not validated. A patch that
// switches kind to video must carry a video URL with it.
func validatePatch(p *models.ContentPatch) *apperror.AppError {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return apperror.ValidationFailed("title", "Title must not be empty.")
		}
		if utf8.RuneCountInString(*p.Title) > maxTitleLen {
			return apperror.ValidationFailed("title", "Title is too long (max 255 characters).")
		}
	}
	if p.Author != nil {
		if strings.TrimSpace(*p.Author) == "" {
			return apperror.ValidationFailed("author", "Author must not be empty.")
		}
		if utf8.RuneCountInString(*p.Author) > maxAuthorLen {
			return apperror.ValidationFailed("author", "Author is too long (max 100 characters).")
		}
	}
	if p.Category != nil && !models.ValidCategory(*p.Category) {
		return apperror.ValidationFailed("category", "Category must be one of physics, chemistry, biology, astronomy, technology.")
	}
	if p.Kind != nil && !models.ValidKind(*p.Kind) {
		return apperror.ValidationFailed("type", "Type must be article or video.")
	}
	if p.Kind != nil && *p.Kind == models.KindVideo && (p.VideoURL == nil || strings.TrimSpace(*p.VideoURL) == "") {
		return apperror.ValidationFailed("videoUrl", "A video URL is required when changing type to video.")
	}
	return validateOptional(p.Excerpt, p.Body, p.VideoURL, p.FeaturedImage)
}

func validateOptional(excerpt, body, videoURL, featuredImage *string) *apperror.AppError {
	if excerpt != nil && utf8.RuneCountInString(*excerpt) > maxExcerptLen {
		return apperror.ValidationFailed("excerpt", "Excerpt is too long (max 1,000 characters).")
	}
	if body != nil && utf8.RuneCountInString(*body) > maxBodyLen {
		return apperror.ValidationFailed("body", "Body is too long (max 100,000 characters).")
	}
	if videoURL != nil && utf8.RuneCountInString(*videoURL) > maxURLLen {
		return apperror.ValidationFailed("videoUrl", "Video URL is too long (max 500 characters).")
	}
	if featuredImage != nil && utf8.RuneCountInString(*featuredImage) > maxURLLen {
		return apperror.ValidationFailed("featuredImage", "Featured image path is too long (max 500 characters).")
	}
	return nil
}
