package router

import (
	"net/http"
	"time"

	"medsaver/internal/auth"
	"medsaver/internal/dashboard"
	"medsaver/internal/history"
	"medsaver/internal/medicine"
	"medsaver/internal/middleware"
	"medsaver/internal/profile"
	"medsaver/internal/reminder"
	"medsaver/internal/scan"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log         *zap.Logger
	CORSOrigins []string
	Tokens      *auth.Tokens

	Auth          *auth.Handler
	Profile       *profile.Handler
	Scan          *scan.Handler
	Medicine      *medicine.Handler
	MedicineAdmin *medicine.AdminHandler
	Reminder      *reminder.Handler
	ReminderAdmin *reminder.AdminHandler
	History       *history.Handler
	Dashboard     *dashboard.Handler
}

func New(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	// ───────────────────────── USER ROUTES ─────────────────────────
	api := r.Group("")
	api.Use(middleware.AuthMiddleware(d.Tokens))
	{
		api.GET("/dashboard", d.Dashboard.Get)

		api.GET("/profile", d.Profile.Get)
		api.PUT("/profile", d.Profile.Update)
		api.POST("/profile/avatar", d.Profile.UploadAvatar)

		api.POST("/scans", d.Scan.Create)
		api.GET("/scans", d.Scan.List)
		api.GET("/scans/:id", d.Scan.Get)

		api.POST("/medicines/search", d.Medicine.Search)
		api.GET("/medicines/suggestions", d.Medicine.Suggestions)

		api.POST("/favorites", d.Medicine.AddFavorite)
		api.GET("/favorites", d.Medicine.ListFavorites)
		api.DELETE("/favorites/:id", d.Medicine.DeleteFavorite)

		api.GET("/history", d.History.List)
		api.GET("/history/export", d.History.Export)
	}

	// ───────────────────────── REMINDERS ─────────────────────────
	reminders := api.Group("/reminders")
	{
		reminders.POST("", d.Reminder.Create)
		reminders.GET("", d.Reminder.List)
		reminders.GET("/upcoming", d.Reminder.Upcoming)
		reminders.PUT("/:id", d.Reminder.Update)
		reminders.PATCH("/:id/toggle", d.Reminder.Toggle)
		reminders.DELETE("/:id", d.Reminder.Delete)
		reminders.GET("/:id/logs", d.Reminder.Logs)
		reminders.POST("/:id/logs/:logID/taken", d.Reminder.MarkTaken)
		reminders.GET("/:id/adherence", d.Reminder.Adherence)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/medicines/import", d.MedicineAdmin.Import)
		admin.POST("/reminders/dispatch", d.ReminderAdmin.Dispatch)
	}

	return r
}
