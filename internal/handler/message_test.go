package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"messenger/internal/middleware"
	"messenger/internal/models"
	"messenger/internal/token"
)

type fakeConversationRepo struct {
	conversations map[int64]*models.Conversation
	nextID        int64
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[int64]*models.Conversation), nextID: 1}
}

func (f *fakeConversationRepo) CreateConversation(conversation *models.Conversation) error {
	conversation.ID = f.nextID
	f.nextID++
	conversation.DateCreated = time.Now()
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConversationRepo) GetConversationByID(id int64) (*models.Conversation, error) {
	return f.conversations[id], nil
}

func (f *fakeConversationRepo) GetConversationsByUserID(userID int64) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, conv := range f.conversations {
		if conv.User1 == userID || conv.User2 == userID {
			out = append(out, conv)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[int64]*models.Message), nextID: 1}
}

func (f *fakeMessageRepo) CreateMessage(message *models.Message) error {
	message.ID = f.nextID
	f.nextID++
	message.DateCreated = time.Now()
	f.messages[message.ID] = message
	return nil
}

func (f *fakeMessageRepo) GetMessageByID(id int64) (*models.Message, error) {
	return f.messages[id], nil
}

func (f *fakeMessageRepo) GetMessagesByConversationID(conversationID int64) ([]*models.Message, error) {
	var out []*models.Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) GetAllMessages() ([]*models.Message, error) {
	var out []*models.Message
	for _, msg := range f.messages {
		out = append(out, msg)
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkMessageRead(id int64) error {
	f.messages[id].MsgRead = true
	return nil
}

type messageTestEnv struct {
	router           *gin.Engine
	userRepo         *fakeUserRepo
	conversationRepo *fakeConversationRepo
	messageRepo      *fakeMessageRepo
	issuer           *token.Issuer
}

func newMessageTestEnv() *messageTestEnv {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := newFakeUserRepo()
	conversationRepo := newFakeConversationRepo()
	messageRepo := newFakeMessageRepo()
	issuer := token.NewIssuer([]byte("test-secret"), time.Hour)

	conversationHandler := NewConversationHandler(conversationRepo, messageRepo, log)
	messageHandler := NewMessageHandler(messageRepo, conversationRepo, log)
	authRequired := middleware.RequireAuth(issuer, userRepo, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	api.GET("/conversations", authRequired, conversationHandler.GetConversations)
	api.POST("/conversations", authRequired, conversationHandler.CreateConversation)
	api.GET("/conversations/:conversation_id/messages", authRequired, conversationHandler.GetConversationMessages)
	api.GET("/messages", messageHandler.GetAllMessages)
	api.GET("/messages/:message_id", authRequired, messageHandler.GetMessageByID)
	api.POST("/messages", authRequired, messageHandler.CreateMessage)
	api.PATCH("/messages/:message_id", authRequired, messageHandler.UpdateMessage)

	return &messageTestEnv{
		router:           router,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		issuer:           issuer,
	}
}

func (e *messageTestEnv) do(method, path, body, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *messageTestEnv) seedUser(t *testing.T, id int64, fullName string) (*models.User, string) {
	t.Helper()
	user := &models.User{ID: id, FullName: fullName, Deactivated: "false"}
	e.userRepo.users[id] = user
	tokenString, err := e.issuer.Issue(user)
	require.NoError(t, err)
	return user, "Bearer " + tokenString
}

func TestCreateMessageEndpoint(t *testing.T) {
	t.Parallel()

	env := newMessageTestEnv()
	alice, aliceAuth := env.seedUser(t, 1, "Alice")
	bob, _ := env.seedUser(t, 2, "Bob")
	_, carolAuth := env.seedUser(t, 3, "Carol")

	conversation := &models.Conversation{User1: alice.ID, User2: bob.ID}
	require.NoError(t, env.conversationRepo.CreateConversation(conversation))

	t.Run("missing content first", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/messages", `{}`, aliceAuth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing 'content' in request body"}`, w.Body.String())
	})

	t.Run("missing conversation_id second", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/messages", `{"content":"hi"}`, aliceAuth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing 'conversation_id' in request body"}`, w.Body.String())
	})

	t.Run("non-participant gets 404", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/messages", `{"content":"hi","conversation_id":1}`, carolAuth)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Conversation doesn't exist"}`, w.Body.String())
	})

	t.Run("sender comes from the token", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/messages", `{"content":"hi","conversation_id":1,"user_id":999}`, aliceAuth)
		require.Equal(t, http.StatusCreated, w.Code)

		var created models.Message
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, alice.ID, created.UserID)
		assert.Equal(t, "hi", created.Content)
		assert.False(t, created.MsgRead)
		assert.Equal(t, "/api/messages/1", w.Header().Get("Location"))
	})
}

func TestGetMessageEndpoint_NotFound(t *testing.T) {
	t.Parallel()

	env := newMessageTestEnv()
	_, auth := env.seedUser(t, 1, "Alice")

	w := env.do(http.MethodGet, "/api/messages/99", "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Message doesn't exist"}`, w.Body.String())
}

func TestUpdateMessageEndpoint_MarksRead(t *testing.T) {
	t.Parallel()

	env := newMessageTestEnv()
	alice, auth := env.seedUser(t, 1, "Alice")
	bob, _ := env.seedUser(t, 2, "Bob")

	conversation := &models.Conversation{User1: alice.ID, User2: bob.ID}
	require.NoError(t, env.conversationRepo.CreateConversation(conversation))
	message := &models.Message{ConversationID: conversation.ID, UserID: bob.ID, Content: "hi"}
	require.NoError(t, env.messageRepo.CreateMessage(message))

	w := env.do(http.MethodPatch, "/api/messages/1", `{"msg_read":true}`, auth)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, env.messageRepo.messages[message.ID].MsgRead)
}

func TestConversationEndpoints(t *testing.T) {
	t.Parallel()

	env := newMessageTestEnv()
	alice, aliceAuth := env.seedUser(t, 1, "Alice")
	bob, bobAuth := env.seedUser(t, 2, "Bob")
	_, carolAuth := env.seedUser(t, 3, "Carol")

	t.Run("create requires user_2", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/conversations", `{}`, aliceAuth)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing 'user_2' in request body"}`, w.Body.String())
	})

	t.Run("create and list", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/conversations", `{"user_2":2}`, aliceAuth)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/conversations/1", w.Header().Get("Location"))

		var created models.Conversation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, alice.ID, created.User1)
		assert.Equal(t, bob.ID, created.User2)

		// Both participants see it, an outsider sees nothing.
		for _, auth := range []string{aliceAuth, bobAuth} {
			w := env.do(http.MethodGet, "/api/conversations", "", auth)
			require.Equal(t, http.StatusOK, w.Code)
			var list []models.Conversation
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
			assert.Len(t, list, 1)
		}
		w = env.do(http.MethodGet, "/api/conversations", "", carolAuth)
		require.Equal(t, http.StatusOK, w.Code)
		var list []models.Conversation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Empty(t, list)
	})

	t.Run("messages are participant-only", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/conversations/1/messages", "", carolAuth)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Conversation doesn't exist"}`, w.Body.String())

		w = env.do(http.MethodGet, "/api/conversations/1/messages", "", bobAuth)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
