package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), toMovieFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toApiMovies(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieById(w http.ResponseWriter, r *http.Request, movieId int) {
	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MovieResponse{Movie: toApiMovie(movie)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:       input.Title,
		Description: input.Description,
		PosterUrl:   input.PosterUrl,
		Genre:       input.Genre,
		Duration:    input.Duration,
		ReleaseDate: fromApiDate(input.ReleaseDate),
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, api.MovieResponse{Movie: toApiMovie(movie)}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, movieId int) {
	var input api.UpdateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	patch := domain.MoviePatch{
		Title:       input.Title,
		Description: input.Description,
		PosterUrl:   input.PosterUrl,
		Genre:       input.Genre,
		Duration:    input.Duration,
		ReleaseDate: fromApiDate(input.ReleaseDate),
	}

	movie, err := app.movieRepo.Update(r.Context(), movieId, patch)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.MovieResponse{Movie: toApiMovie(movie)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, movieId int) {
	err := app.movieRepo.Delete(r.Context(), movieId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMoviesWithShowtimes lists movies with their showtimes on the requested
// day, or with every upcoming showtime when no date is given.
func (app *Application) GetMoviesWithShowtimes(
	w http.ResponseWriter,
	r *http.Request,
	params api.GetMoviesWithShowtimesParams) {

	movies, err := app.movieRepo.GetWithShowtimes(r.Context(), fromApiDate(params.Date))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MoviesWithShowtimesResponse{
		Movies: make([]api.MovieWithShowtimes, len(movies)),
	}

	for i, m := range movies {
		movie := toApiMovie(&m.Movie)

		resp.Movies[i] = api.MovieWithShowtimes{
			Id:          movie.Id,
			Title:       movie.Title,
			Description: movie.Description,
			PosterUrl:   movie.PosterUrl,
			Genre:       movie.Genre,
			Duration:    movie.Duration,
			ReleaseDate: movie.ReleaseDate,
			Showtimes:   toApiShowtimes(m.Showtimes),
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieShowtimes(w http.ResponseWriter, r *http.Request, movieId int) {
	showtimes, err := app.booking.UpcomingShowtimes(r.Context(), movieId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.ShowtimeListResponse{Showtimes: toApiShowtimes(showtimes)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}
	if params.Genre != nil {
		filters.Genre = *params.Genre
	}

	return filters
}

func toApiMovies(movies []*domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))
	for i, movie := range movies {
		result[i] = toApiMovie(movie)
	}

	return result
}

func toApiMovie(movie *domain.Movie) api.Movie {
	if movie == nil {
		return api.Movie{}
	}

	m := api.Movie{
		Id:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		PosterUrl:   movie.PosterUrl,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
	}

	if movie.ReleaseDate != nil {
		m.ReleaseDate = &types.Date{Time: *movie.ReleaseDate}
	}

	return m
}

func fromApiDate(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}

	t := d.Time
	return &t
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
