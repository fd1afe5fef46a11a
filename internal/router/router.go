package router

import (
	"github.com/geoexplorer/backend/config"
	"github.com/geoexplorer/backend/internal/handler"
	"github.com/geoexplorer/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Router wires handlers and middleware into the HTTP surface
type Router struct {
	cfg        *config.Config
	auth       *handler.AuthHandler
	user       *handler.UserHandler
	level      *handler.LevelHandler
	trivia     *handler.TriviaHandler
	mistake    *handler.MistakeHandler
	geoFeature *handler.GeoFeatureHandler
	arLandform *handler.ARLandformHandler
	health     *handler.HealthHandler
	jwt        *middleware.JWTMiddleware
}

func NewRouter(
	cfg *config.Config,
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	level *handler.LevelHandler,
	trivia *handler.TriviaHandler,
	mistake *handler.MistakeHandler,
	geoFeature *handler.GeoFeatureHandler,
	arLandform *handler.ARLandformHandler,
	health *handler.HealthHandler,
	jwt *middleware.JWTMiddleware,
) *Router {
	return &Router{
		cfg:        cfg,
		auth:       auth,
		user:       user,
		level:      level,
		trivia:     trivia,
		mistake:    mistake,
		geoFeature: geoFeature,
		arLandform: arLandform,
		health:     health,
		jwt:        jwt,
	}
}

// SetupRoutes builds the gin engine with all middleware and routes attached
func (r *Router) SetupRoutes() *gin.Engine {
	if !r.cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORS(r.cfg.CORS.AllowedOrigins))

	engine.GET("/", r.health.Root)

	api := engine.Group("/api")
	api.GET("/health", r.health.Check)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(r.cfg.RateLimit.AuthHTTPMax, r.cfg.RateLimit.AuthHTTPWindow))
	{
		auth.POST("/send-code", r.auth.SendCode)
		auth.POST("/register", r.auth.Register)
		auth.POST("/login/password", r.auth.LoginPassword)
		auth.POST("/login/code", r.auth.LoginCode)
		auth.POST("/refresh", r.auth.Refresh)
		auth.POST("/logout", r.auth.Logout)

		protected := auth.Group("")
		protected.Use(r.jwt.RequireAuth())
		{
			protected.GET("/me", r.auth.Me)
			protected.POST("/logout-all", r.auth.LogoutAll)
		}
	}

	users := api.Group("/users")
	{
		users.POST("", r.user.Create)
		users.GET("/:id", r.user.GetByID)
		users.PUT("/:id", r.user.Update)
		users.GET("/:id/progress", r.user.GetProgress)
	}

	levels := api.Group("/levels")
	{
		levels.GET("", r.level.GetAll)
		levels.POST("", r.level.Create)
		levels.GET("/:id", r.level.GetByID)
	}

	progress := api.Group("/progress")
	{
		progress.GET("/:user_id", r.level.GetUserProgress)
		progress.PUT("/:user_id/:level_id", r.level.UpdateUserProgress)
	}

	trivia := api.Group("/trivia")
	{
		trivia.GET("", r.trivia.GetAll)
		trivia.POST("", r.trivia.Create)
		// /trivia/today is handled inside GetByID
		trivia.GET("/:id", r.trivia.GetByID)
	}

	mistakes := api.Group("/mistakes")
	{
		mistakes.GET("", r.mistake.GetAll)
		mistakes.POST("", r.mistake.Create)
		mistakes.GET("/:id", r.mistake.GetByID)
		mistakes.PUT("/:id", r.mistake.Update)
		mistakes.DELETE("/:id", r.mistake.Delete)
	}

	features := api.Group("/geo-features")
	{
		features.GET("", r.geoFeature.GetAll)
		features.POST("", r.geoFeature.Create)
		features.GET("/:id", r.geoFeature.GetByID)
	}

	landforms := api.Group("/ar-landforms")
	{
		landforms.GET("", r.arLandform.GetAll)
		landforms.POST("", r.arLandform.Create)
		landforms.GET("/:id", r.arLandform.GetByID)
	}

	return engine
}
