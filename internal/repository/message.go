package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"messenger/internal/models"
)

type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id int64) (*models.Message, error)
	GetMessagesByConversationID(conversationID int64) ([]*models.Message, error)
	GetAllMessages() ([]*models.Message, error)
	MarkMessageRead(id int64) error
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{db: db, logger: logger}
}

func (r *messageRepository) CreateMessage(message *models.Message) error {
	query := `INSERT INTO messages (conversation_id, user_id, content)
	          VALUES ($1, $2, $3) RETURNING id, msg_read, date_created`
	return r.db.QueryRowx(query, message.ConversationID, message.UserID, message.Content).
		Scan(&message.ID, &message.MsgRead, &message.DateCreated)
}

func (r *messageRepository) GetMessageByID(id int64) (*models.Message, error) {
	var message models.Message
	query := `SELECT id, conversation_id, user_id, content, msg_read, date_created FROM messages WHERE id = $1`
	err := r.db.Get(&message, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Message not found
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) GetMessagesByConversationID(conversationID int64) ([]*models.Message, error) {
	var messages []*models.Message
	query := `SELECT id, conversation_id, user_id, content, msg_read, date_created FROM messages
	          WHERE conversation_id = $1 ORDER BY date_created ASC`
	err := r.db.Select(&messages, query, conversationID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) GetAllMessages() ([]*models.Message, error) {
	var messages []*models.Message
	query := `SELECT id, conversation_id, user_id, content, msg_read, date_created FROM messages ORDER BY date_created ASC`
	err := r.db.Select(&messages, query)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkMessageRead(id int64) error {
	query := `UPDATE messages SET msg_read = true WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}
