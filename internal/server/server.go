package server

import (
	"backend-gigboard/internal/auth"
	"backend-gigboard/internal/config"
	"backend-gigboard/internal/gamification"
	"backend-gigboard/internal/geocode"
	"backend-gigboard/internal/media"
	"backend-gigboard/internal/pin"
	"backend-gigboard/internal/post"
	"backend-gigboard/internal/profile"
	"backend-gigboard/internal/session"
	"backend-gigboard/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	geocoder := geocode.NewClient(s.Cfg.GeocodeURL, s.Cfg.GeocodeToken)
	points := gamification.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, s.Cfg.OAuthTokenURL))
	post.RegisterRoutes(s.App.Group("/posts"), post.NewService(s.DB, geocoder, points, s.Stream), jwtMiddleware)
	pin.RegisterRoutes(s.App.Group("/pins"), pin.NewService(s.DB, points, s.Stream), jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profile"), profile.NewService(s.DB, points), jwtMiddleware)
	gamification.RegisterRoutes(s.App.Group("/leaderboard"), points)
	session.RegisterRoutes(s.App.Group("/session"), session.NewStore(s.Redis), jwtMiddleware)
	media.RegisterRoutes(s.App.Group("/media"), media.NewService(s.DB, s.Cfg.MediaBaseURL), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
