package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"messenger/internal/models"
)

// ErrDuplicateEmail is returned by CreateUser when the unique constraint on
// users.email rejects the insert. Two concurrent registrations can both pass
// the EmailExists probe; the constraint is the authoritative check.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserUpdate carries the optional fields of a partial user update. Nil
// pointers leave the stored column untouched.
type UserUpdate struct {
	FullName    *string
	Password    *string
	Deactivated *string
}

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	EmailExists(email string) (bool, error)
	UpdateUser(id int64, update UserUpdate) error
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (email, full_name, password, deactivated)
	          VALUES ($1, $2, $3, $4) RETURNING id, date_created`
	err := r.db.QueryRowx(query, user.Email, user.FullName, user.Password, user.Deactivated).
		Scan(&user.ID, &user.DateCreated)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, full_name, password, deactivated, date_created FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, full_name, password, deactivated, date_created FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.db.Get(&exists, query, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) UpdateUser(id int64, update UserUpdate) error {
	query := `UPDATE users SET
	            full_name = COALESCE($1, full_name),
	            password = COALESCE($2, password),
	            deactivated = COALESCE($3, deactivated)
	          WHERE id = $4`
	_, err := r.db.Exec(query, update.FullName, update.Password, update.Deactivated, id)
	return err
}
