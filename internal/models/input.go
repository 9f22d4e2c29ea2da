package models

// ContentInput carries the fields a caller supplies when creating a content
// item. Server-assigned fields (id, timestamps) are absent.
type ContentInput struct {
	Title         string   `json:"title"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Body          *string  `json:"body,omitempty"`
	Category      Category `json:"category"`
	Kind          Kind     `json:"type"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	VideoURL      *string  `json:"videoUrl,omitempty"`
	FeaturedImage *string  `json:"featuredImage,omitempty"`
	Published     *bool    `json:"published,omitempty"` // nil defaults to true
}

// ContentPatch carries a partial update. Nil fields are left untouched by
// the store; supplied fields are merged and updated_at is refreshed.
type ContentPatch struct {
	Title         *string   `json:"title,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Body          *string   `json:"body,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Kind          *Kind     `json:"type,omitempty"`
	Author        *string   `json:"author,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	Published     *bool     `json:"published,omitempty"`
}
