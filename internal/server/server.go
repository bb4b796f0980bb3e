package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"messenger/internal/config"
	"messenger/internal/handler"
	"messenger/internal/middleware"
	"messenger/internal/password"
	"messenger/internal/repository"
	"messenger/internal/service"
	"messenger/internal/token"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
	log    *logrus.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
		log:    logrus.New(),
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Auth components: secret and cost are read once here and never change.
	hasher := password.NewBcryptHasher(s.cfg.Auth.BcryptCost)
	issuer := token.NewIssuer([]byte(s.cfg.Auth.JWTSecret), time.Duration(s.cfg.Auth.TokenTTLHours)*time.Hour)

	userRepo := repository.NewUserRepository(s.db, s.logger)
	profileRepo := repository.NewProfileRepository(s.db, s.logger)
	conversationRepo := repository.NewConversationRepository(s.db, s.logger)
	messageRepo := repository.NewMessageRepository(s.db, s.logger)

	userService := service.NewUserService(userRepo, hasher, issuer, s.logger)

	authHandler := handler.NewAuthHandler(userService, s.log)
	userHandler := handler.NewUserHandler(userService, s.log)
	profileHandler := handler.NewProfileHandler(profileRepo, s.log)
	conversationHandler := handler.NewConversationHandler(conversationRepo, messageRepo, s.log)
	messageHandler := handler.NewMessageHandler(messageRepo, conversationRepo, s.log)

	authRequired := middleware.RequireAuth(issuer, userRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.PUT("/auth/refresh", authRequired, authHandler.Refresh)

		api.GET("/users", authRequired, userHandler.GetUser)
		api.POST("/users", userHandler.Register)
		api.PATCH("/users", authRequired, userHandler.Update)

		api.GET("/profiles", profileHandler.GetAllProfiles)
		api.GET("/profiles/:profile_id", authRequired, profileHandler.GetProfileByID)
		api.POST("/profiles", authRequired, profileHandler.CreateProfile)
		api.PATCH("/profiles/:profile_id", authRequired, profileHandler.UpdateProfile)

		api.GET("/conversations", authRequired, conversationHandler.GetConversations)
		api.POST("/conversations", authRequired, conversationHandler.CreateConversation)
		api.GET("/conversations/:conversation_id/messages", authRequired, conversationHandler.GetConversationMessages)

		api.GET("/messages", messageHandler.GetAllMessages)
		api.GET("/messages/:message_id", authRequired, messageHandler.GetMessageByID)
		api.POST("/messages", authRequired, messageHandler.CreateMessage)
		api.PATCH("/messages/:message_id", authRequired, messageHandler.UpdateMessage)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
