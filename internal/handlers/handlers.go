package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contacthub/internal/config"
	"contacthub/internal/middleware"
	"contacthub/internal/models"
	"contacthub/internal/repository"
	"contacthub/internal/service"
	"contacthub/internal/storage"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	authService    *service.AuthService
	contactService *service.ContactService
	userService    *service.UserService
	db             *pgxpool.Pool
	cache          *redis.Client
	store          *storage.ObjectStore
	users          *repository.UserRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	auth := service.NewAuthService(userRepo, cache, cfg, log)
	contacts := service.NewContactService(contactRepo, userRepo, store, cache, cfg, log)
	users := service.NewUserService(userRepo, cache, cfg, log)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    auth,
		contactService: contacts,
		userService:    users,
		db:             db,
		cache:          cache,
		store:          store,
		users:          userRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/signup", h.Signup)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)

	me := router.Group("/auth")
	me.Use(middleware.Auth(h.cfg, h.users))
	me.GET("/me", h.Me)

	contacts := router.Group("/contacts")
	contacts.Use(middleware.Auth(h.cfg, h.users))
	contacts.GET("", h.ListContacts)
	contacts.POST("", h.CreateContact)
	contacts.GET("/:id", h.GetContact)
	contacts.PUT("/:id", h.UpdateContact)
	contacts.DELETE("/:id", h.DeleteContact)
	contacts.POST("/:id/share", h.ShareContact)
	contacts.DELETE("/:id/share", h.UnshareContact)

	users := router.Group("/users")
	users.Use(
		middleware.Auth(h.cfg, h.users),
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleSuperAdmin),
	)
	users.GET("", h.ListUsers)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}
