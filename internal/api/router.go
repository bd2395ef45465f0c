package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal/auth"
	"github.com/yourname/dreamcatcher/internal/metrics"
)

type RouterOptions struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(app App, provider auth.Provider, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), MetricsMiddleware(), AccessLogMiddleware(app.Logger()))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to DreamCatcher API"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "dreamcatcher"})
	})

	authn := auth.AuthMiddleware(provider, app.Logger())
	limiter := NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware(app.Logger())

	authGroup := api.Group("/auth")
	authGroup.POST("/register", Register(app))
	authGroup.POST("/login", LoginForm(app))
	authGroup.POST("/login/json", LoginJSON(app))
	authGroup.GET("/me", authn, Me(app))

	dreams := api.Group("/dreams", authn)
	dreams.POST("", PostDream(app))
	dreams.GET("", ListDreams(app))
	dreams.GET("/:id", GetDream(app))
	dreams.PUT("/:id", PutDream(app))
	dreams.DELETE("/:id", DeleteDream(app))
	dreams.POST("/:id/interpret", limiter, InterpretDream(app))

	goals := api.Group("/goals", authn)
	goals.POST("", PostGoal(app))
	goals.GET("", ListGoals(app))
	goals.GET("/categories/list", GetGoalCategories(app))
	goals.GET("/statuses/list", GetGoalStatuses(app))
	goals.GET("/:id", GetGoal(app))
	goals.PUT("/:id", PutGoal(app))
	goals.DELETE("/:id", DeleteGoal(app))
	goals.GET("/:id/progress", GetGoalProgress(app))
	goals.POST("/:id/suggest", limiter, SuggestGoal(app))

	ideas := api.Group("/ideas", authn)
	ideas.POST("", PostIdea(app))
	ideas.GET("", ListIdeas(app))
	ideas.GET("/:id", GetIdea(app))
	ideas.PUT("/:id", PutIdea(app))
	ideas.DELETE("/:id", DeleteIdea(app))

	sleep := api.Group("/sleep", authn)
	sleep.POST("", PostSleep(app))
	sleep.GET("", GetSleep(app))
	sleep.GET("/stats", GetSleepStats(app))
	sleep.GET("/:id", GetSleepLog(app))
	sleep.PUT("/:id", PutSleepLog(app))
	sleep.DELETE("/:id", DeleteSleepLog(app))

	aiGroup := api.Group("/ai", authn)
	aiGroup.GET("/status", GetAIStatus(app))
	aiGroup.GET("/insights", limiter, GetInsights(app))
	aiGroup.POST("/brainstorm", limiter, PostBrainstorm(app))

	return r
}
