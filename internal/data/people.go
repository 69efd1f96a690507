package data

import (
	"database/sql"
	"errors"
	"sync"
)

// Role is one filmography entry for a person. Characters here are stored as
// a proper JSON array, unlike the delimiter encoding on movie principals, so
// decoding is strict and a malformed value fails the lookup.
type Role struct {
	MovieName  string   `json:"movieName"`
	MovieID    string   `json:"movieId"`
	Category   string   `json:"category"`
	Characters []string `json:"characters"`
	ImdbRating *float64 `json:"imdbRating"`
}

type Person struct {
	Name      string `json:"name"`
	BirthYear *int32 `json:"birthYear"`
	DeathYear *int32 `json:"deathYear"`
	Roles     []Role `json:"roles"`
}

type PersonModel struct {
	DB *sql.DB
}

// Get looks up a person and their filmography. The person row and the role
// rows are independent queries issued concurrently and joined once both
// complete. ErrRecordNotFound means the person row is absent.
func (m PersonModel) Get(id string) (*Person, error) {
	var (
		wg        sync.WaitGroup
		person    *Person
		roles     []Role
		personErr error
		rolesErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		person, personErr = m.getPersonRow(id)
	}()

	go func() {
		defer wg.Done()
		roles, rolesErr = m.getRoles(id)
	}()

	wg.Wait()

	if personErr != nil {
		return nil, personErr
	}
	if rolesErr != nil {
		return nil, rolesErr
	}

	person.Roles = roles

	return person, nil
}

func (m PersonModel) getPersonRow(id string) (*Person, error) {
	query := `
		SELECT "primaryName", "birthYear", "deathYear"
		FROM names
		WHERE nconst = $1`

	var (
		person    Person
		birthYear sql.NullInt32
		deathYear sql.NullInt32
	)

	err := m.DB.QueryRow(query, id).Scan(&person.Name, &birthYear, &deathYear)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if birthYear.Valid {
		person.BirthYear = &birthYear.Int32
	}
	if deathYear.Valid {
		person.DeathYear = &deathYear.Int32
	}

	return &person, nil
}

func (m PersonModel) getRoles(id string) ([]Role, error) {
	query := `
		SELECT basics."primaryTitle", principals.tconst, principals.category, principals.characters, basics."imdbRating"
		FROM principals
		JOIN basics ON principals.tconst = basics.tconst
		WHERE principals.nconst = $1`

	rows, err := m.DB.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []Role{}

	for rows.Next() {
		var (
			role       Role
			characters sql.NullString
			imdbRating sql.NullString
		)

		err := rows.Scan(&role.MovieName, &role.MovieID, &role.Category, &characters, &imdbRating)
		if err != nil {
			return nil, err
		}

		role.Characters = []string{}
		if characters.Valid {
			role.Characters, err = ParseStrictCharacters(characters.String)
			if err != nil {
				return nil, err
			}
		}

		role.ImdbRating = parseNullFloat(imdbRating)

		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}
