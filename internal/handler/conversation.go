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

type ConversationHandler interface {
	GetConversations(c *gin.Context)
	CreateConversation(c *gin.Context)
	GetConversationMessages(c *gin.Context)
}

type conversationHandler struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	log              *logrus.Logger
}

func NewConversationHandler(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository, log *logrus.Logger) ConversationHandler {
	return &conversationHandler{conversationRepo: conversationRepo, messageRepo: messageRepo, log: log}
}

// GetConversations handles GET /api/conversations. It lists only the
// conversations the authenticated user takes part in.
func (h *conversationHandler) GetConversations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conversations, err := h.conversationRepo.GetConversationsByUserID(user.ID)
	if err != nil {
		h.log.Errorf("Failed to get conversations for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

type CreateConversationRequest struct {
	User2 *int64 `json:"user_2"`
}

// CreateConversation handles POST /api/conversations
func (h *conversationHandler) CreateConversation(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.User2 == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'user_2' in request body"})
		return
	}

	conversation := &models.Conversation{
		User1: user.ID,
		User2: *req.User2,
	}
	if err := h.conversationRepo.CreateConversation(conversation); err != nil {
		h.log.Errorf("Failed to create conversation for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/conversations/%d", conversation.ID))
	c.JSON(http.StatusCreated, conversation)
}

// GetConversationMessages handles GET /api/conversations/:conversation_id/messages.
// Non-participants get the same 404 as a missing conversation.
func (h *conversationHandler) GetConversationMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	idStr := c.Param("conversation_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	conversation, err := h.conversationRepo.GetConversationByID(id)
	if err != nil {
		h.log.Errorf("Failed to get conversation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}
	if conversation == nil || (conversation.User1 != user.ID && conversation.User2 != user.ID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation doesn't exist"})
		return
	}

	messages, err := h.messageRepo.GetMessagesByConversationID(id)
	if err != nil {
		h.log.Errorf("Failed to get messages for conversation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
