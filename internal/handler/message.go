package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"messenger/internal/middleware"
	"messenger/internal/models"
	"messenger/internal/repository"
)

type MessageHandler interface {
	GetAllMessages(c *gin.Context)
	GetMessageByID(c *gin.Context)
	CreateMessage(c *gin.Context)
	UpdateMessage(c *gin.Context)
}

type messageHandler struct {
	messageRepo      repository.MessageRepository
	conversationRepo repository.ConversationRepository
	log              *logrus.Logger
}

func NewMessageHandler(messageRepo repository.MessageRepository, conversationRepo repository.ConversationRepository, log *logrus.Logger) MessageHandler {
	return &messageHandler{messageRepo: messageRepo, conversationRepo: conversationRepo, log: log}
}

// GetAllMessages handles GET /api/messages
func (h *messageHandler) GetAllMessages(c *gin.Context) {
	messages, err := h.messageRepo.GetAllMessages()
	if err != nil {
		h.log.Errorf("Failed to get messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetMessageByID handles GET /api/messages/:message_id
func (h *messageHandler) GetMessageByID(c *gin.Context) {
	idStr := c.Param("message_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := h.messageRepo.GetMessageByID(id)
	if err != nil {
		h.log.Errorf("Failed to get message %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		return
	}
	if message == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message doesn't exist"})
		return
	}

	c.JSON(http.StatusOK, message)
}

type CreateMessageRequest struct {
	Content        *string `json:"content"`
	ConversationID *int64  `json:"conversation_id"`
}

// CreateMessage handles POST /api/messages. The sender is always the
// token-resolved user, never a field of the request.
func (h *messageHandler) CreateMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	required := []struct {
		name    string
		present bool
	}{
		{"content", req.Content != nil},
		{"conversation_id", req.ConversationID != nil},
	}
	for _, field := range required {
		if !field.present {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing '" + field.name + "' in request body"})
			return
		}
	}

	conversation, err := h.conversationRepo.GetConversationByID(*req.ConversationID)
	if err != nil {
		h.log.Errorf("Failed to get conversation %d: %v", *req.ConversationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}
	if conversation == nil || (conversation.User1 != user.ID && conversation.User2 != user.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation doesn't exist"})
		return
	}

	message := &models.Message{
		ConversationID: *req.ConversationID,
		UserID:         user.ID,
		Content:        *req.Content,
	}
	if err := h.messageRepo.CreateMessage(message); err != nil {
		h.log.Errorf("Failed to create message in conversation %d: %v", *req.ConversationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/messages/%d", message.ID))
	c.JSON(http.StatusCreated, message)
}

// UpdateMessage handles PATCH /api/messages/:message_id. The only mutable
// field is the read flag.
func (h *messageHandler) UpdateMessage(c *gin.Context) {
	idStr := c.Param("message_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := h.messageRepo.GetMessageByID(id)
	if err != nil {
		h.log.Errorf("Failed to get message %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		return
	}
	if message == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message doesn't exist"})
		return
	}

	if err := h.messageRepo.MarkMessageRead(id); err != nil {
		h.log.Errorf("Failed to mark message %d read: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.Status(http.StatusNoContent)
}
