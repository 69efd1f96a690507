package data

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/leebrouse/movieBase/internal/jsonlog"
)

// MovieSummary is one row of a search result. The three rating fields are
// cast to fixed-precision decimals at the query boundary and parsed back to
// floats here, so a missing rating stays null instead of becoming NaN.
type MovieSummary struct {
	Title                string   `json:"title"`
	Year                 int32    `json:"year"`
	ImdbID               string   `json:"imdbID"`
	ImdbRating           *float64 `json:"imdbRating"`
	RottenTomatoesRating *float64 `json:"rottenTomatoesRating"`
	MetacriticRating     *float64 `json:"metacriticRating"`
	Classification       *string  `json:"classification"`
}

// Principal is a credited person on a movie.
type Principal struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Name       string   `json:"name"`
	Characters []string `json:"characters"`
}

// Rating holds one review source and its value parsed from the stored
// "X/Y" encoding. Value is null when the stored text is unparseable.
type Rating struct {
	Source string   `json:"source"`
	Value  *float64 `json:"value"`
}

type MovieDetail struct {
	Title      string      `json:"title"`
	Year       int32       `json:"year"`
	Runtime    int32       `json:"runtime"`
	Genres     []string    `json:"genres"`
	Country    *string     `json:"country"`
	Principals []Principal `json:"principals"`
	Ratings    []Rating    `json:"ratings"`
	Boxoffice  *int64      `json:"boxoffice"`
	Poster     *string     `json:"poster"`
	Plot       *string     `json:"plot"`
}

type MovieModel struct {
	DB     *sql.DB
	Logger *jsonlog.Logger
}

// Search returns one page of movies matching the optional title substring
// and exact year, plus the pagination window. The page query and the count
// query share the same filters and run concurrently, because LIMIT/OFFSET
// pagination needs a separate total.
func (m MovieModel) Search(title string, year int, page int) ([]*MovieSummary, Pagination, error) {
	currentPage := page
	if currentPage < 1 {
		currentPage = 1
	}
	offset := (currentPage - 1) * PageSize

	var (
		wg       sync.WaitGroup
		movies   []*MovieSummary
		total    int
		pageErr  error
		countErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		movies, pageErr = m.searchPage(title, year, offset)
	}()

	go func() {
		defer wg.Done()
		total, countErr = m.searchCount(title, year)
	}()

	wg.Wait()

	if pageErr != nil {
		return nil, Pagination{}, pageErr
	}
	if countErr != nil {
		return nil, Pagination{}, countErr
	}

	return movies, calculatePagination(total, page), nil
}

func (m MovieModel) searchPage(title string, year int, offset int) ([]*MovieSummary, error) {
	query := `
		SELECT DISTINCT tconst, "primaryTitle", year,
			CAST("imdbRating" AS DECIMAL(3,1)),
			CAST("rottenTomatoesRating" AS DECIMAL(3,0)),
			CAST("metacriticRating" AS DECIMAL(3,0)),
			rated
		FROM basics
		WHERE ($1 = '' OR "primaryTitle" LIKE '%' || $1 || '%')
		AND ($2 = 0 OR year = $2)
		ORDER BY tconst
		LIMIT $3 OFFSET $4`

	rows, err := m.DB.Query(query, title, year, PageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*MovieSummary{}

	for rows.Next() {
		var (
			movie          MovieSummary
			imdb           sql.NullString
			rottenTomatoes sql.NullString
			metacritic     sql.NullString
			classification sql.NullString
		)

		err := rows.Scan(&movie.ImdbID, &movie.Title, &movie.Year, &imdb, &rottenTomatoes, &metacritic, &classification)
		if err != nil {
			return nil, err
		}

		movie.ImdbRating = parseNullFloat(imdb)
		movie.RottenTomatoesRating = parseNullFloat(rottenTomatoes)
		movie.MetacriticRating = parseNullFloat(metacritic)
		if classification.Valid {
			movie.Classification = &classification.String
		}

		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (m MovieModel) searchCount(title string, year int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT tconst)
		FROM basics
		WHERE ($1 = '' OR "primaryTitle" LIKE '%' || $1 || '%')
		AND ($2 = 0 OR year = $2)`

	var total int
	err := m.DB.QueryRow(query, title, year).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Get assembles the detail document for one imdbID from three independent
// lookups (movie row, principals, ratings) issued concurrently and joined in
// memory. ErrRecordNotFound means the movie row is absent; principals and
// ratings may legitimately be empty.
func (m MovieModel) Get(imdbID string) (*MovieDetail, error) {
	var (
		wg           sync.WaitGroup
		movie        *MovieDetail
		principals   []Principal
		ratings      []Rating
		movieErr     error
		principalErr error
		ratingErr    error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		movie, movieErr = m.getMovieRow(imdbID)
	}()

	go func() {
		defer wg.Done()
		principals, principalErr = m.getPrincipals(imdbID)
	}()

	go func() {
		defer wg.Done()
		ratings, ratingErr = m.getRatings(imdbID)
	}()

	wg.Wait()

	switch {
	case movieErr != nil:
		return nil, movieErr
	case principalErr != nil:
		return nil, principalErr
	case ratingErr != nil:
		return nil, ratingErr
	}

	movie.Principals = principals
	movie.Ratings = ratings

	return movie, nil
}

func (m MovieModel) getMovieRow(imdbID string) (*MovieDetail, error) {
	query := `
		SELECT DISTINCT "primaryTitle", year, "runtimeMinutes", genres, country, boxoffice, poster, plot
		FROM basics
		WHERE tconst = $1`

	var (
		movie     MovieDetail
		genres    sql.NullString
		country   sql.NullString
		boxoffice sql.NullInt64
		poster    sql.NullString
		plot      sql.NullString
	)

	err := m.DB.QueryRow(query, imdbID).Scan(&movie.Title, &movie.Year, &movie.Runtime, &genres, &country, &boxoffice, &poster, &plot)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	movie.Genres = []string{}
	if genres.Valid && genres.String != "" {
		movie.Genres = strings.Split(genres.String, ",")
	}
	if country.Valid {
		movie.Country = &country.String
	}
	if boxoffice.Valid {
		movie.Boxoffice = &boxoffice.Int64
	}
	if poster.Valid {
		movie.Poster = &poster.String
	}
	if plot.Valid {
		movie.Plot = &plot.String
	}

	return &movie, nil
}

func (m MovieModel) getPrincipals(imdbID string) ([]Principal, error) {
	query := `
		SELECT DISTINCT nconst, category, name, characters
		FROM principals
		WHERE tconst = $1`

	rows, err := m.DB.Query(query, imdbID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	principals := []Principal{}

	for rows.Next() {
		var (
			principal  Principal
			characters sql.NullString
		)

		err := rows.Scan(&principal.ID, &principal.Category, &principal.Name, &characters)
		if err != nil {
			return nil, err
		}

		// A garbled characters field must not fail the whole lookup:
		// log it and fall back to an empty list.
		principal.Characters = []string{}
		if characters.Valid {
			parsed, err := ParseDelimitedCharacters(characters.String)
			if err != nil {
				m.Logger.PrintError(err, map[string]string{
					"imdbID":    imdbID,
					"principal": principal.ID,
				})
			} else {
				principal.Characters = parsed
			}
		}

		principals = append(principals, principal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return principals, nil
}

func (m MovieModel) getRatings(imdbID string) ([]Rating, error) {
	query := `
		SELECT DISTINCT source, value
		FROM ratings
		WHERE tconst = $1`

	rows, err := m.DB.Query(query, imdbID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []Rating{}

	for rows.Next() {
		var (
			rating Rating
			value  sql.NullString
		)

		err := rows.Scan(&rating.Source, &value)
		if err != nil {
			return nil, err
		}

		if value.Valid {
			rating.Value = parseRatingValue(value.String)
		}

		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ratings, nil
}

// parseRatingValue extracts the numerator of an "X/Y" rating string, such as
// "7.6/10" or "94/100". Unparseable input yields nil rather than an error.
func parseRatingValue(s string) *float64 {
	numerator, _, _ := strings.Cut(s, "/")

	value, err := strconv.ParseFloat(numerator, 64)
	if err != nil {
		return nil
	}

	return &value
}

func parseNullFloat(ns sql.NullString) *float64 {
	if !ns.Valid {
		return nil
	}

	value, err := strconv.ParseFloat(ns.String, 64)
	if err != nil {
		return nil
	}

	return &value
}
