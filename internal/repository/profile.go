package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"messenger/internal/models"
)

// ProfileUpdate carries the optional fields of a partial profile update.
type ProfileUpdate struct {
	Username  *string
	Bio       *string
	AvatarURL *string
}

type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id int64) (*models.Profile, error)
	GetAllProfiles() ([]*models.Profile, error)
	UpdateProfile(id int64, update ProfileUpdate) error
}

type profileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

func (r *profileRepository) CreateProfile(profile *models.Profile) error {
	query := `INSERT INTO profiles (user_id, username, bio, avatar_url)
	          VALUES ($1, $2, $3, $4) RETURNING id, date_created`
	return r.db.QueryRowx(query, profile.UserID, profile.Username, profile.Bio, profile.AvatarURL).
		Scan(&profile.ID, &profile.DateCreated)
}

func (r *profileRepository) GetProfileByID(id int64) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT id, user_id, username, bio, avatar_url, date_created FROM profiles WHERE id = $1`
	err := r.db.Get(&profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Profile not found
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAllProfiles() ([]*models.Profile, error) {
	var profiles []*models.Profile
	query := `SELECT id, user_id, username, bio, avatar_url, date_created FROM profiles ORDER BY date_created DESC`
	err := r.db.Select(&profiles, query)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) UpdateProfile(id int64, update ProfileUpdate) error {
	query := `UPDATE profiles SET
	            username = COALESCE($1, username),
	            bio = COALESCE($2, bio),
	            avatar_url = COALESCE($3, avatar_url)
	          WHERE id = $4`
	_, err := r.db.Exec(query, update.Username, update.Bio, update.AvatarURL, id)
	return err
}
