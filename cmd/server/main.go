package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/config"
	"github.com/questlog/questlog/internal/constants"
	"github.com/questlog/questlog/internal/database"
	"github.com/questlog/questlog/internal/handlers"
	"github.com/questlog/questlog/internal/middleware"
	"github.com/questlog/questlog/internal/repository"
	"github.com/questlog/questlog/internal/services"
	"github.com/questlog/questlog/internal/session"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Printf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.tmpl")

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge, // 24 hours
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Box-art lookup: optional, cached in Redis when configured
	var boxArt services.BoxArtClient
	if cfg.MetadataAPIKey != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr()})
		boxArt = services.NewCachedBoxArtClient(
			services.NewGiantBombClient(cfg.MetadataAPIURL, cfg.MetadataAPIKey),
			rdb,
		)
	}

	// Initialize services
	userRepo := repository.NewUserRepository(database.GetDB())
	hasher := services.NewPasswordHasher()
	authService := services.NewAuthService(userRepo, hasher)
	backlogService := services.NewBacklogService(userRepo, boxArt)
	communityService := services.NewCommunityService(userRepo)
	sm := session.NewManager()

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(sm)
	authHandler := handlers.NewAuthHandler(authService, sm)
	gameHandler := handlers.NewGameHandler(backlogService, sm)
	communityHandler := handlers.NewCommunityHandler(communityService)

	r.GET("/", homeHandler.Index)
	r.GET("/health", homeHandler.Health)
	r.GET("/community", communityHandler.Index)

	auth := r.Group("/auth")
	{
		auth.GET("/sign-up", authHandler.SignUpForm)
		auth.POST("/sign-up", authHandler.SignUp)
		auth.GET("/sign-in", authHandler.SignInForm)
		auth.POST("/sign-in", authHandler.SignIn)
		auth.GET("/sign-out", authHandler.SignOut)
	}

	games := r.Group("/users/:userId/games")
	{
		// Listings and detail pages are publicly viewable
		games.GET("", middleware.ResolveOwner(userRepo), gameHandler.Index)
		games.GET("/:gameId", middleware.ResolveOwner(userRepo), gameHandler.Show)

		// The add-game form just needs a signed-in caller
		games.GET("/new", middleware.RequireAuth(sm), middleware.ResolveOwner(userRepo), gameHandler.New)

		// Writes require the caller to be the owner in the path
		games.POST("", middleware.RequireOwner(sm, userRepo), gameHandler.Create)
		games.GET("/:gameId/edit", middleware.RequireOwner(sm, userRepo), gameHandler.Edit)
		games.PUT("/:gameId", middleware.RequireOwner(sm, userRepo), gameHandler.Update)
		games.DELETE("/:gameId", middleware.RequireOwner(sm, userRepo), gameHandler.Delete)
	}

	// Start server; MethodOverride must wrap the router so HTML forms can
	// submit PUT and DELETE.
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, middleware.MethodOverride(r)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
