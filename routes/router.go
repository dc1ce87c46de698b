package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cppla/conduit/config"
	"github.com/cppla/conduit/controllers"
	"github.com/cppla/conduit/middleware"
	"github.com/cppla/conduit/service"
	"github.com/cppla/conduit/store"
	"github.com/cppla/conduit/utils"
)

// SetupRouter wires routes, middlewares, and controllers. rc may be nil.
func SetupRouter(cfg config.AppConfig, db *gorm.DB, rc *redis.Client, tokens *utils.TokenProvider) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}
	r.Use(middleware.Metrics())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	uow := store.New(db)
	cache := utils.NewCache(rc)
	revoker := utils.NewTokenRevoker(rc)
	auth := middleware.NewAuthenticator(tokens, revoker)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	articleService := service.NewArticleService(uow, cache)
	userController := controllers.NewUserController(service.NewUserService(uow, utils.NewPasswordHasher(), tokens, revoker))
	profileController := controllers.NewProfileController(service.NewProfileService(uow))
	articleController := controllers.NewArticleController(articleService)
	statsController := controllers.NewStatsController(service.NewStatsService(uow), service.NewTagService(uow, cache))

	api := r.Group("/api")

	authGroup := api.Group("/users")
	authGroup.Use(limiter.Middleware())
	authGroup.POST("", userController.Register)
	authGroup.POST("/login", userController.Login)
	authGroup.POST("/logout", auth.Required(), userController.Logout)
	authGroup.GET("", auth.Required(), userController.ListUsers)

	api.GET("/user", auth.Required(), userController.Me)
	api.PUT("/user", auth.Required(), limiter.Middleware(), userController.UpdateProfile)

	api.GET("/profiles/:username", auth.Optional(), profileController.GetProfile)
	api.GET("/tags", statsController.ListTags)
	api.GET("/stats", statsController.GetStats)

	public := api.Group("/articles")
	public.Use(auth.Optional())
	public.GET("", articleController.ListArticles)
	public.GET("/:slug", articleController.GetArticle)
	public.GET("/:slug/comments", articleController.ListComments)

	protected := api.Group("")
	protected.Use(auth.Required(), limiter.Middleware())
	protected.POST("/profiles/:username/follow", profileController.Follow)
	protected.DELETE("/profiles/:username/follow", profileController.Unfollow)
	protected.GET("/articles/feed", articleController.Feed)
	protected.POST("/articles", articleController.CreateArticle)
	protected.PUT("/articles/:slug", articleController.UpdateArticle)
	protected.DELETE("/articles/:slug", articleController.DeleteArticle)
	protected.POST("/articles/:slug/favorite", articleController.FavoriteArticle)
	protected.DELETE("/articles/:slug/favorite", articleController.UnfavoriteArticle)
	protected.POST("/articles/:slug/comments", articleController.AddComment)
	protected.DELETE("/articles/:slug/comments/:id", articleController.DeleteComment)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
