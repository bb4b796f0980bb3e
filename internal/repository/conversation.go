package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"messenger/internal/models"
)

type ConversationRepository interface {
	CreateConversation(conversation *models.Conversation) error
	GetConversationByID(id int64) (*models.Conversation, error)
	GetConversationsByUserID(userID int64) ([]*models.Conversation, error)
}

type conversationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewConversationRepository(db *sqlx.DB, logger *zap.Logger) ConversationRepository {
	return &conversationRepository{db: db, logger: logger}
}

func (r *conversationRepository) CreateConversation(conversation *models.Conversation) error {
	query := `INSERT INTO conversations (user_1, user_2) VALUES ($1, $2) RETURNING id, date_created`
	return r.db.QueryRowx(query, conversation.User1, conversation.User2).
		Scan(&conversation.ID, &conversation.DateCreated)
}

func (r *conversationRepository) GetConversationByID(id int64) (*models.Conversation, error) {
	var conversation models.Conversation
	query := `SELECT id, user_1, user_2, date_created FROM conversations WHERE id = $1`
	err := r.db.Get(&conversation, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Conversation not found
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) GetConversationsByUserID(userID int64) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	query := `SELECT id, user_1, user_2, date_created FROM conversations
	          WHERE user_1 = $1 OR user_2 = $1 ORDER BY date_created DESC`
	err := r.db.Select(&conversations, query, userID)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
