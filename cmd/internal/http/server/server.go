package server

import (
	"net/http"

	"noteshare/cmd/internal/http/handler"
	authmw "noteshare/cmd/internal/http/middleware"
	"noteshare/cmd/internal/utils/uid"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Routes struct {
	Notes       *handler.DefaultNoteRoute
	Users       *handler.DefaultUserRoute
	Leaderboard *handler.DefaultLeaderboardRoute
	Quiz        *handler.DefaultQuizRoute
}

type Options struct {
	BodyLimit string
	Tokens    authmw.TokenVerifier
}

// New builds the echo instance with every route mounted.
func New(opts Options, routes *Routes) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uid.RequestID}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{Tokens: opts.Tokens})
	api := e.Group("/api")

	// Users
	api.POST("/register", routes.Users.Register)
	api.POST("/login", routes.Users.Login)
	api.GET("/profile", routes.Users.GetProfile, auth)

	// Notes
	api.GET("/notes", routes.Notes.GetNotes)
	api.POST("/notes", routes.Notes.CreateNote, auth)
	api.GET("/notes/:id", routes.Notes.GetNote)
	api.POST("/notes/:id/rate", routes.Notes.RateNote, auth)
	api.POST("/notes/:id/like", routes.Notes.LikeNote, auth)
	api.POST("/notes/:id/comment", routes.Notes.CommentNote, auth)
	api.GET("/notes/:id/download", routes.Notes.DownloadNote)

	// Leaderboard
	api.GET("/leaderboard", routes.Leaderboard.GetLeaderboard)
	api.POST("/leaderboard", routes.Leaderboard.CreateEntry, auth)

	// Quiz
	api.POST("/quiz", routes.Quiz.CreateQuiz, auth)
	api.GET("/motivation", routes.Quiz.GetMotivation)
	api.GET("/catalog", routes.Quiz.GetCatalog)

	e.GET("/uploads/:ref", routes.Notes.ServeUpload)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)
	return e
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
