package domain

import (
	"context"
	"strings"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	PosterUrl   string
	Genre       string
	Duration    int
	ReleaseDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MoviePatch lists the movie fields an admin may change. Nil fields are left untouched.
type MoviePatch struct {
	Title       *string
	Description *string
	PosterUrl   *string
	Genre       *string
	Duration    *int
	ReleaseDate *time.Time
}

func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.PosterUrl != nil {
		m.PosterUrl = *p.PosterUrl
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.ReleaseDate != nil {
		m.ReleaseDate = p.ReleaseDate
	}
}

type MovieWithShowtimes struct {
	Movie
	Showtimes []Showtime
}

type MovieFilters struct {
	Page     int
	PageSize int
	Term     string
	Genre    string
	Sort     string
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Update(ctx context.Context, id int, patch MoviePatch) (*Movie, error)
	Delete(ctx context.Context, id int) error
	GetWithShowtimes(ctx context.Context, date *time.Time) ([]MovieWithShowtimes, error)
}
