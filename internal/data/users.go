package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type User struct {
	Email    string
	Password password
}

// password keeps the plaintext (when known) alongside the bcrypt hash so the
// two can never be mixed up.
type password struct {
	plaintext *string
	hash      []byte
}

func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcryptCost)
	if err != nil {
		return err
	}

	p.plaintext = &plaintextPassword
	p.hash = hash

	return nil
}

func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// Profile is the readable slice of a user row. All fields except email are
// optional; dob and address are PII and only shown to the owning user.
type Profile struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Dob       *string `json:"dob"`
	Address   *string `json:"address"`
}

// PublicProfile is the redacted view returned to everyone but the owner.
type PublicProfile struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (p *Profile) Redacted() *PublicProfile {
	return &PublicProfile{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

type UserModel struct {
	DB *sql.DB
}

// Insert stores a new user. The unique index on email is the single source
// of truth for duplicates, so a concurrent double-register cannot slip
// through an existence pre-check.
func (m UserModel) Insert(user *User) error {
	query := `
		INSERT INTO users (email, hash)
		VALUES ($1, $2)`

	_, err := m.DB.Exec(query, user.Email, string(user.Password.hash))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (m UserModel) GetByEmail(email string) (*User, error) {
	query := `
		SELECT email, hash
		FROM users
		WHERE email = $1`

	var (
		user User
		hash string
	)

	err := m.DB.QueryRow(query, email).Scan(&user.Email, &hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	user.Password.hash = []byte(hash)

	return &user, nil
}

func (m UserModel) GetProfile(email string) (*Profile, error) {
	query := `
		SELECT email, "firstName", "lastName", dob, address
		FROM users
		WHERE email = $1`

	var (
		profile   Profile
		firstName sql.NullString
		lastName  sql.NullString
		dob       sql.NullString
		address   sql.NullString
	)

	err := m.DB.QueryRow(query, email).Scan(&profile.Email, &firstName, &lastName, &dob, &address)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if firstName.Valid {
		profile.FirstName = &firstName.String
	}
	if lastName.Valid {
		profile.LastName = &lastName.String
	}
	if dob.Valid {
		profile.Dob = &dob.String
	}
	if address.Valid {
		profile.Address = &address.String
	}

	return &profile, nil
}

// UpdateProfile writes the four profile fields for a user. A zero-row update
// means the user does not exist and surfaces as ErrRecordNotFound.
func (m UserModel) UpdateProfile(email, firstName, lastName, dob, address string) error {
	query := `
		UPDATE users
		SET "firstName" = $1, "lastName" = $2, dob = $3, address = $4
		WHERE email = $5`

	result, err := m.DB.Exec(query, firstName, lastName, dob, address, email)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
