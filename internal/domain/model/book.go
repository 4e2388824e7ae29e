package model

import (
	"time"
)

// DefaultThumbnail is the placeholder cover used whenever the Google Books
// lookup fails or returns no image.
const DefaultThumbnail = "/static/images/BR_logo_no_thumbnail.png"

type Book struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Year             int       `json:"year"`
	ISBN             int64     `json:"isbn"`
	ShortDescription string    `json:"short_description"`
	Owner            string    `json:"owner"` // owning account's username, not a foreign key
	CreationDate     time.Time `json:"creation_date"`
	Comments         string    `json:"comments"`
	Rating           int       `json:"rating"` // 1..10
	Genre            string    `json:"genre"`
	Private          bool      `json:"private"` // excluded from cross-user search when set
	Thumbnail        string    `json:"thumbnail"`
}

// BookQuery is the repository-level filter a search resolves to. Exactly one
// of the three shapes is active: ISBN exact match when ISBN != 0, otherwise
// fuzzy title/author plus minimum rating, with an optional exact genre.
// Owner scopes private searches; PublicOnly scopes public ones.
type BookQuery struct {
	Owner      string
	PublicOnly bool
	ISBN       int64
	Title      string
	Author     string
	MinRating  int
	Genre      string
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}
