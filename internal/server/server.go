// Package server assembles the Fiber application and its routes.
package server

import (
	"strings"

	"mbaymi-backend/internal/activity"
	"mbaymi-backend/internal/advice"
	"mbaymi-backend/internal/audit"
	"mbaymi-backend/internal/auth"
	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/cropproblem"
	"mbaymi-backend/internal/farm"
	"mbaymi-backend/internal/harvest"
	"mbaymi-backend/internal/health"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/livestock"
	"mbaymi-backend/internal/market"
	"mbaymi-backend/internal/metrics"
	"mbaymi-backend/internal/network"
	"mbaymi-backend/internal/news"
	"mbaymi-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const bodyLimit = 12 << 20

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Store   storage.Store
	News    *news.Aggregator
	Metrics *metrics.Metrics
}

func New(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: httperr.Handler,
		BodyLimit:    bodyLimit,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logger.New())
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", d.Metrics.Handler())
	}

	app.Get("/", health.InfoHandler(cfg.AppName))
	app.Get("/health", health.HealthHandler(d.DB, cfg.AppName))
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api", auth.OptionalJWT(cfg))
	registerRoutes(api, d)

	return app
}

func registerRoutes(api fiber.Router, d Deps) {
	db := d.DB
	cfg := d.Config
	svc := network.NewService(db)

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", auth.RegisterHandler(db))
	authRoutes.Post("/login", auth.LoginHandler(db, cfg))
	authRoutes.Post("/refresh", auth.RefreshHandler(db, cfg))
	authRoutes.Get("/me", auth.JWTMiddleware(cfg), auth.MeHandler(db))

	// Farms, photos and crops
	farms := api.Group("/farms")
	farms.Post("/", farm.CreateFarmHandler(db))
	farms.Get("/user/:user_id", farm.ListUserFarmsHandler(db))
	farms.Get("/:id", farm.GetFarmHandler(db))
	farms.Put("/:id", farm.UpdateFarmHandler(db))
	farms.Delete("/:id", farm.DeleteFarmHandler(db))
	farms.Get("/:id/summary", farm.FarmSummaryHandler(db))
	farms.Post("/:id/photos", farm.AddFarmPhotoHandler(db))
	farms.Get("/:id/photos", farm.ListFarmPhotosHandler(db))
	farms.Delete("/:id/photos/:photo_id", farm.DeleteFarmPhotoHandler(db))
	farms.Delete("/:id/profile", farm.ClearFarmImageHandler(db))
	farms.Post("/:id/crops", farm.CreateCropHandler(db))
	farms.Get("/:id/crops", farm.ListFarmCropsHandler(db))
	farms.Post("/:id/crops/:crop_id/photo", farm.SetFarmCropPhotoHandler(db))

	crops := api.Group("/crops")
	crops.Post("/:id/photo", farm.SetCropPhotoHandler(db))
	crops.Put("/:id", farm.UpdateCropHandler(db))
	crops.Delete("/:id", farm.DeleteCropHandler(db))

	// Livestock
	herd := api.Group("/livestock")
	herd.Post("/", livestock.CreateLivestockHandler(db))
	herd.Get("/user/:user_id", livestock.ListUserLivestockHandler(db))
	herd.Get("/:id", livestock.GetLivestockHandler(db))
	herd.Put("/:id", livestock.UpdateLivestockHandler(db))
	herd.Delete("/:id", livestock.DeleteLivestockHandler(db))

	// Market prices
	prices := api.Group("/market/prices")
	prices.Get("/", market.ListPricesHandler(db))
	prices.Post("/", market.CreatePriceHandler(db))
	prices.Get("/region/:region", market.RegionPricesHandler(db))
	prices.Get("/:product", market.ProductPricesHandler(db))

	// Activities
	activities := api.Group("/activities")
	activities.Post("/", activity.CreateActivityHandler(db))
	activities.Get("/farm/:farm_id", activity.ListFarmActivitiesHandler(db))
	activities.Get("/crop/:crop_id", activity.ListCropActivitiesHandler(db))
	activities.Put("/:id", activity.UpdateActivityHandler(db))
	activities.Delete("/:id", activity.DeleteActivityHandler(db))

	// Harvests and sales
	harvests := api.Group("/harvests")
	harvests.Post("/", harvest.CreateHarvestHandler(db))
	harvests.Get("/farm/:farm_id", harvest.ListFarmHarvestsHandler(db))
	harvests.Get("/crop/:crop_id", harvest.ListCropHarvestsHandler(db))

	sales := api.Group("/sales")
	sales.Post("/", harvest.CreateSaleHandler(db))
	sales.Get("/user/:user_id", harvest.ListUserSalesHandler(db))
	sales.Get("/harvest/:harvest_id", harvest.ListHarvestSalesHandler(db))

	// Crop problems
	problems := api.Group("/crop-problems")
	problems.Post("/", cropproblem.ReportProblemHandler(db))
	problems.Get("/crop/:crop_id", cropproblem.ListCropProblemsHandler(db))
	problems.Get("/farm/:farm_id", cropproblem.ListFarmProblemsHandler(db))
	problems.Put("/:id/status", cropproblem.UpdateStatusHandler(db))
	problems.Delete("/:id", cropproblem.DeleteProblemHandler(db))

	// Farm network (profiles, posts, legacy farm follows)
	fn := api.Group("/farm-network")
	fn.Get("/profiles/search", network.SearchProfilesHandler(svc))
	fn.Post("/profiles/:farm_id", network.CreateProfileHandler(svc))
	fn.Get("/profiles/:farm_id", network.GetProfileHandler(svc))
	fn.Get("/public-farms", network.PublicFarmsHandler(svc))
	fn.Post("/posts", network.CreatePostHandler(svc))
	fn.Get("/posts/farm/:farm_id", network.FarmPostsHandler(svc))
	fn.Get("/feed", network.FarmFeedHandler(svc))
	fn.Post("/follow/:farm_id", network.FollowFarmHandler(svc))
	fn.Delete("/follow/:farm_id", network.UnfollowFarmHandler(svc))
	fn.Get("/following/:user_id", network.FollowedFarmsHandler(svc))

	// User follows and feed
	users := api.Group("/users")
	users.Get("/:id/profile", network.UserProfileHandler(svc))
	users.Get("/:id/posts", network.UserPostsHandler(svc))
	users.Put("/:id/farms/:farm_id/visibility", network.SetVisibilityHandler(svc))
	users.Post("/:id/follow", network.FollowUserHandler(svc))
	users.Delete("/:id/follow", network.UnfollowUserHandler(svc))
	users.Get("/:id/following", network.FollowingHandler(svc))
	users.Get("/:id/followers", network.FollowersHandler(svc))
	users.Get("/:id/feed", network.UserFeedHandler(svc))

	api.Post("/advice", advice.AdviceHandler())

	if d.News != nil {
		api.Get("/news/agricultural", news.AgriculturalNewsHandler(d.News))
	}
	if d.Store != nil {
		api.Post("/uploads", storage.UploadHandler(d.Store))
	}

	api.Get("/audit-logs", audit.ListAuditLogsHandler(db))
}
