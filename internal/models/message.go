package models

import "time"

// Message represents a message stored in the 'messages' table.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Content        string    `db:"content" json:"content"`
	MsgRead        bool      `db:"msg_read" json:"msg_read"`
	DateCreated    time.Time `db:"date_created" json:"date_created"`
}
