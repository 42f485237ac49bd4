package domain

// Post is a blog post declared in a person's file
type Post struct {
	URL         string   `json:"url" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	PublishedAt string   `json:"published_at" validate:"required"`
	Details     *Article `json:"details,omitempty"`
}

// Article is the article metadata fetched from the blogging platform.
// After aggregation Author points back to the person who declared the post.
type Article struct {
	URL                string   `json:"url"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	PublishedAt        string   `json:"published_at"`
	CoverImage         string   `json:"cover_image,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	ReadingTimeMinutes int      `json:"reading_time_minutes,omitempty"`
	Reactions          int      `json:"public_reactions_count,omitempty"`
	Comments           int      `json:"comments_count,omitempty"`

	Author *Person `json:"-"`
}

// IsEmpty reports whether the article carries no usable metadata
func (a *Article) IsEmpty() bool {
	return a == nil || (a.URL == "" && a.Title == "")
}
