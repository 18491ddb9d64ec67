package api

import (
	"context"
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/config"
	"igreja_backend/internal/domain"
	h "igreja_backend/internal/http/handlers"
	"igreja_backend/internal/http/middleware"
	"igreja_backend/internal/logger"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/services"
)

// NewRouter wires repositories, services and handlers onto the Gin engine.
// Every dependency flows in through parameters; nothing is package state.
func NewRouter(env config.Env, db *sql.DB, store *cache.Cache) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Get(context.Background()).Warn().Err(err).Msg("falha ao configurar trusted proxies")
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "rota não encontrada",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.Static(env.UploadPublicURL, env.UploadDir)

	stats := services.NewStatsService(db, store)
	members := h.NewMemberHandler(repositories.NewMemberRepo(db), store, stats)
	events := h.NewEventHandler(repositories.NewEventRepo(db), store)
	donations := h.NewDonationHandler(repositories.NewDonationRepo(db), store, stats)
	ministries := h.NewMinistryHandler(repositories.NewMinistryRepo(db), store)
	visits := h.NewVisitHandler(repositories.NewVisitRepo(db), store)
	visitors := h.NewVisitorHandler(repositories.NewVisitorRepo(db), store)
	streams := h.NewStreamHandler(repositories.NewStreamRepo(db), store)
	users := h.UserHandler{Users: repositories.NewUserRepo(db)}
	auth := h.AuthHandler{Users: repositories.NewUserRepo(db), Secret: []byte(env.JWTSecret), CookieSecure: env.Environment == "production"}
	uploads := h.UploadHandler{Uploads: services.NewUploadService(env.UploadDir, env.UploadPublicURL)}
	system := h.SystemHandler{DB: db, Cache: store, Environment: env.Environment, Stats: stats}

	loginLimit := middleware.NewLoginRateLimiter(10, 5)

	r.GET("/health", system.Health)

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)

		ag := api.Group("/auth")
		ag.POST("/login", loginLimit.Middleware(), auth.Login)
		ag.POST("/register", loginLimit.Middleware(), auth.Register)
		ag.POST("/logout", auth.Logout)
		ag.GET("/me", middleware.RequireAuth(auth.Secret), auth.Me)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(auth.Secret))

		leader := middleware.RequireRole(domain.RoleLeader)
		admin := middleware.RequireRole(domain.RoleAdmin)

		authed.GET("/dashboard/stats", leader, system.Dashboard)

		mg := authed.Group("/members")
		mg.Use(leader)
		mg.GET("", members.List)
		mg.GET("/stats", members.MemberStats)
		mg.GET("/:id", members.Get)
		mg.POST("", members.CreateRecord)
		mg.PUT("/:id", members.UpdateRecord)
		mg.DELETE("/:id", admin, members.DeleteRecord)

		eg := authed.Group("/events")
		eg.GET("", events.List)
		eg.GET("/:id", events.Get)
		eg.POST("", leader, events.CreateRecord)
		eg.PUT("/:id", leader, events.UpdateRecord)
		eg.DELETE("/:id", leader, events.DeleteRecord)

		dg := authed.Group("/donations")
		dg.Use(leader)
		dg.GET("", donations.List)
		dg.GET("/stats", donations.DonationStats)
		dg.GET("/info", donations.DonationInfo)
		dg.GET("/:id", donations.Get)
		dg.GET("/:id/receipt", donations.Receipt)
		dg.POST("", donations.CreateRecord)
		dg.PUT("/:id", donations.UpdateRecord)
		dg.DELETE("/:id", admin, donations.DeleteRecord)

		mng := authed.Group("/ministries")
		mng.GET("", ministries.List)
		mng.GET("/:id", ministries.Get)
		mng.POST("", admin, ministries.CreateRecord)
		mng.PUT("/:id", admin, ministries.UpdateRecord)
		mng.DELETE("/:id", admin, ministries.DeleteRecord)

		vg := authed.Group("/visits")
		vg.Use(leader)
		vg.GET("", visits.List)
		vg.GET("/:id", visits.Get)
		vg.POST("", visits.CreateRecord)
		vg.PUT("/:id", visits.UpdateRecord)
		vg.DELETE("/:id", visits.DeleteRecord)

		vtg := authed.Group("/visitors")
		vtg.Use(leader)
		vtg.GET("", visitors.List)
		vtg.GET("/:id", visitors.Get)
		vtg.POST("", visitors.CreateRecord)
		vtg.PUT("/:id", visitors.UpdateRecord)
		vtg.DELETE("/:id", admin, visitors.DeleteRecord)

		sg := authed.Group("/streams")
		sg.GET("", streams.List)
		sg.GET("/:id", streams.Get)
		sg.POST("", leader, streams.CreateRecord)
		sg.PUT("/:id", leader, streams.UpdateRecord)
		sg.DELETE("/:id", leader, streams.DeleteRecord)

		ug := authed.Group("/users")
		ug.Use(admin)
		ug.GET("", users.List)
		ug.PUT("/:id/role", users.UpdateRole)

		authed.POST("/upload", leader, uploads.UploadImage)
	}

	return r
}

// recovery keeps panics inside the response envelope instead of Gin's plain
// 500.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.FromGin(c).Error().Interface("panic", err).Msg("panic recuperado")
		c.AbortWithStatusJSON(stdhttp.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "erro interno",
		})
	})
}
