package models

import "time"

// Conversation links exactly two users. user_1 is the creator.
type Conversation struct {
	ID          int64     `db:"id" json:"id"`
	User1       int64     `db:"user_1" json:"user_1"`
	User2       int64     `db:"user_2" json:"user_2"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
}
