package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a row in the 'users' table. Password holds the bcrypt
// digest and is never serialized.
type User struct {
	ID          int64     `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	FullName    string    `db:"full_name" json:"full_name"`
	Password    string    `db:"password" json:"-"`
	Deactivated string    `db:"deactivated" json:"deactivated"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
}

// Claims defines the structure of the JWT claims.
type Claims struct {
	SubjectID int64  `json:"subject_id"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}
