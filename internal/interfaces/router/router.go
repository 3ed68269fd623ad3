package router

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adminsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/admin"
	authsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/auth"
	bidsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/bids"
	chatsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/chat"
	compsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/companies"
	dsgnsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/designer"
	estsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/estimator"
	feedsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/feed"
	matsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/materials"
	notifsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/notifications"
	projsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/projects"
	quotsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/quotations"
	revsvc "github.com/hitarthkothari9641-coder/vastu/internal/application/reviews"
	usersvc "github.com/hitarthkothari9641-coder/vastu/internal/application/users"
	"github.com/hitarthkothari9641-coder/vastu/internal/config"
	"github.com/hitarthkothari9641-coder/vastu/internal/infrastructure/database"
	adminhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/admin"
	authhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/auth"
	bidhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/bids"
	chathandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/chat"
	comphandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/companies"
	dsgnhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/designer"
	esthandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/estimator"
	feedhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/feed"
	mathandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/materials"
	notifhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/notifications"
	projhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/projects"
	quothandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/quotations"
	revhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/reviews"
	userhandler "github.com/hitarthkothari9641-coder/vastu/internal/interfaces/handlers/users"
	"github.com/hitarthkothari9641-coder/vastu/internal/middleware"
	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/response"
)

// CreateApp wires the full application: middleware chain, DB, Redis sessions,
// and every route group.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}

	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}
	if cfg.SeedOnStart {
		if err := database.Seed(db); err != nil {
			return nil, nil, nil, err
		}
	}

	app := NewApp(AppDeps{
		DB:         db,
		Rdb:        rdb,
		SessionMW:  sessionHandler,
		SessionCfg: sessionCfg,
		CORSSuffix: cfg.FrontendURLEndsWith,
		GeminiURL:  cfg.GeminiAPIURL,
		HFURL:      cfg.HuggingFaceAPIURL,
	})
	return app, db, rdb, nil
}

// AppDeps carries pre-built dependencies into NewApp; tests inject sqlite and
// miniredis here.
type AppDeps struct {
	DB         *gorm.DB
	Rdb        *redis.Client
	SessionMW  fiber.Handler
	SessionCfg middleware.SessionConfig
	CORSSuffix string
	GeminiURL  string
	HFURL      string
}

// NewApp assembles the Fiber app from ready dependencies.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: deps.CORSSuffix}))
	if deps.SessionMW != nil {
		app.Use(deps.SessionMW)
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db := deps.DB
	rdb := deps.Rdb

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"database": "ok", "redis": "ok"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status["database"] = "down"
		}
		if rdb == nil || rdb.Ping(c.Context()).Err() != nil {
			status["redis"] = "down"
		}
		return response.Success(c, "Health", status, nil)
	})

	app.Get("/api/services", func(c *fiber.Ctx) error {
		var services []models.Service
		if err := db.Order("name ASC").Find(&services).Error; err != nil {
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
		return response.Success(c, "Services", fiber.Map{"services": services}, nil)
	})

	// Auth
	ah := &authhandler.Handlers{
		Service: &authsvc.Service{DB: db},
		Rdb:     rdb,
		Config:  deps.SessionCfg,
	}
	ag := app.Group("/api/auth")
	ag.Post("/register", ah.Register)
	ag.Post("/login", ah.Login)
	ag.Get("/me", ah.Me)
	ag.Post("/logout", middleware.RequireAuth(), ah.Logout)

	// Users
	uh := &userhandler.Handlers{Service: &usersvc.Service{DB: db}}
	ug := app.Group("/api/users", middleware.RequireAuth())
	ug.Put("/profile", uh.UpdateProfile)
	ug.Get("/dashboard", middleware.RequireRole(constants.RoleUser), uh.Dashboard)

	// Companies
	ch := &comphandler.Handlers{Service: &compsvc.Service{DB: db}}
	cg := app.Group("/api/companies")
	cg.Get("/", ch.List)
	cg.Get("/dashboard", middleware.RequireRole(constants.RoleCompany), ch.Dashboard)
	cg.Put("/profile", middleware.RequireRole(constants.RoleCompany), ch.UpdateProfile)
	cg.Get("/:id", ch.Get)

	// Quotations + bids
	qh := &quothandler.Handlers{Service: &quotsvc.Service{DB: db}}
	bh := &bidhandler.Handlers{Service: &bidsvc.Service{DB: db}}
	qg := app.Group("/api/quotations", middleware.RequireAuth())
	qg.Post("/", middleware.RequireRole(constants.RoleUser), qh.Create)
	qg.Get("/", qh.List)
	qg.Get("/:id", qh.Get)
	qg.Post("/:id/bids", middleware.RequireRole(constants.RoleCompany), bh.Submit)

	bg := app.Group("/api/bids", middleware.RequireAuth())
	bg.Post("/:id/accept", middleware.RequireRole(constants.RoleUser), bh.Accept)
	bg.Post("/:id/reject", middleware.RequireRole(constants.RoleUser), bh.Reject)

	// Projects
	ph := &projhandler.Handlers{Service: &projsvc.Service{DB: db}}
	pg := app.Group("/api/projects", middleware.RequireAuth())
	pg.Get("/", ph.List)
	pg.Get("/:id", ph.Get)
	pg.Post("/:id/milestones/:milestoneId/complete",
		middleware.RequireRole(constants.RoleCompany, constants.RoleAdmin), ph.CompleteMilestone)
	pg.Post("/:id/milestones/:milestoneId/pay",
		middleware.RequireRole(constants.RoleUser, constants.RoleAdmin), ph.PayMilestone)

	// Estimator (public; session only attributes the log)
	eh := &esthandler.Handlers{Service: &estsvc.Service{DB: db}}
	app.Post("/api/ai-estimate", eh.Estimate)

	// Feed
	fh := &feedhandler.Handlers{Service: &feedsvc.Service{DB: db}}
	fg := app.Group("/api/feed")
	fg.Get("/", fh.List)
	fg.Post("/", middleware.RequireRole(constants.RoleCompany), fh.Create)
	fg.Post("/:id/like", middleware.RequireAuth(), fh.ToggleLike)
	fg.Post("/:id/save", middleware.RequireAuth(), fh.ToggleSave)

	// Materials (public price board)
	mh := &mathandler.Handlers{Service: &matsvc.Service{DB: db}}
	mg := app.Group("/api/materials")
	mg.Get("/", mh.List)
	mg.Get("/categories", mh.Categories)
	mg.Get("/:id/history", mh.History)

	// Reviews
	rh := &revhandler.Handlers{Service: &revsvc.Service{DB: db}}
	app.Post("/api/reviews", middleware.RequireRole(constants.RoleUser), rh.Create)
	app.Get("/api/reviews/company/:id", rh.ListForCompany)

	// Chat
	chh := &chathandler.Handlers{Service: &chatsvc.Service{DB: db}}
	chg := app.Group("/api/chat", middleware.RequireAuth())
	chg.Get("/rooms", chh.ListRooms)
	chg.Post("/rooms", chh.OpenRoom)
	chg.Get("/rooms/:id/messages", chh.Messages)
	chg.Post("/rooms/:id/messages", chh.Send)

	// Notifications
	nh := &notifhandler.Handlers{Service: &notifsvc.Service{DB: db}}
	ng := app.Group("/api/notifications", middleware.RequireAuth())
	ng.Get("/", nh.List)
	ng.Post("/read", nh.MarkRead)

	// Admin
	adh := &adminhandler.Handlers{Service: &adminsvc.Service{DB: db}}
	adg := app.Group("/api/admin", middleware.RequireRole(constants.RoleAdmin))
	adg.Get("/stats", adh.Stats)
	adg.Get("/users", adh.ListUsers)
	adg.Post("/users/:id/toggle-status", adh.ToggleUserStatus)
	adg.Post("/companies/:id/verify", adh.VerifyCompany)
	adg.Get("/reports", adh.ListReports)
	adg.Post("/reports/:id/resolve", adh.ResolveReport)
	adg.Get("/projects", adh.ListProjects)

	// AI designer proxy
	dh := &dsgnhandler.Handlers{Service: dsgnsvc.New(deps.GeminiURL, deps.HFURL)}
	dg := app.Group("/api/ai-designer")
	dg.Post("/chat", dh.Chat)
	dg.Post("/generate-image", dh.GenerateImage)
	dg.Post("/suggest-prompt", dh.SuggestPrompt)

	return app
}

// Handler adapts the Fiber app to net/http.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
