package models

import "time"

// Profile is the public-facing page for a user. One per user.
type Profile struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Username    string    `db:"username" json:"username"`
	Bio         string    `db:"bio" json:"bio"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
}
