package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

const movieColumns = `id, title, description, poster_url, genre, duration, release_date, created_at, updated_at`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterUrl,
		&movie.Genre,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, poster_url, genre, duration, release_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Description,
		movie.PosterUrl,
		movie.Genre,
		movie.Duration,
		movie.ReleaseDate).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

// GetAll lists movies matching the full text term and genre. The sort column
// must already be validated against the safelist, it is interpolated as is.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies
		WHERE ((to_tsvector('english', title) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', description) @@ plainto_tsquery('english', $1))
			OR $1 = '')
		AND (lower(genre) = lower($2) OR $2 = '')
		ORDER BY %s %s, id ASC
		LIMIT $3 OFFSET $4`, movieColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Genre, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.Genre,
			&movie.Duration,
			&movie.ReleaseDate,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	return scanMovie(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresMovieRepository) Update(ctx context.Context, id int, patch domain.MoviePatch) (*domain.Movie, error) {
	query := `
		UPDATE movies
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			poster_url = COALESCE($4, poster_url),
			genre = COALESCE($5, genre),
			duration = COALESCE($6, duration),
			release_date = COALESCE($7, release_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + movieColumns

	return scanMovie(p.db.QueryRow(
		ctx,
		query,
		id,
		patch.Title,
		patch.Description,
		patch.PosterUrl,
		patch.Genre,
		patch.Duration,
		patch.ReleaseDate))
}

// Delete removes a movie. Its showtimes, seats and reservations go with it
// through ON DELETE CASCADE.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// GetWithShowtimes returns the movies that have showtimes on date, or any
// upcoming showtime when date is nil, each with those showtimes in start order.
func (p *PostgresMovieRepository) GetWithShowtimes(ctx context.Context, date *time.Time) ([]domain.MovieWithShowtimes, error) {
	query := `
		SELECT
			m.id, m.title, m.description, m.poster_url, m.genre, m.duration, m.release_date, m.created_at, m.updated_at,
			s.id, s.movie_id, s.start_time, s.end_time, s.price, s.total_seats, s.available_seats, s.created_at, s.updated_at
		FROM movies m
		JOIN showtimes s ON s.movie_id = m.id
		WHERE ($1::date IS NULL AND s.start_time > NOW())
			OR (s.start_time >= $1::date AND s.start_time < $1::date + 1)
		ORDER BY m.title, m.id, s.start_time
	`

	var day any
	if date != nil {
		day = date.Format(time.DateOnly)
	}

	rows, err := p.db.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.MovieWithShowtimes{}

	for rows.Next() {
		var (
			movie    domain.Movie
			showtime domain.Showtime
		)

		err = rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterUrl,
			&movie.Genre,
			&movie.Duration,
			&movie.ReleaseDate,
			&movie.CreatedAt,
			&movie.UpdatedAt,
			&showtime.ID,
			&showtime.MovieID,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
			&showtime.TotalSeats,
			&showtime.AvailableSeats,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		last := len(result) - 1
		if last < 0 || result[last].ID != movie.ID {
			result = append(result, domain.MovieWithShowtimes{Movie: movie})
			last++
		}

		result[last].Showtimes = append(result[last].Showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
