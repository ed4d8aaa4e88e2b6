package routes

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/controllers"
	"github.com/bistrohq/bistro/app/repositories"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/pkg/gateway"
	"github.com/bistrohq/bistro/pkg/metrics"
	"github.com/bistrohq/bistro/pkg/middleware"
	"github.com/bistrohq/bistro/pkg/reqid"
	"github.com/bistrohq/bistro/pkg/router"
	"github.com/bistrohq/bistro/pkg/ws"
)

// RegisterAPI wires every HTTP route against the given database handle.
// The hub carries the live order feed; it must already be running.
func RegisterAPI(r *router.Router, db *mongo.Database, hub *ws.Hub) {
	userRepo := repositories.NewUserRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	stripe := gateway.NewStripeClient(config.PaymentAPIURL(), config.PaymentSecretKey())

	authController := controllers.NewAuthController()
	userController := controllers.NewUserController(services.NewUserService(userRepo))
	menuController := controllers.NewMenuController(services.NewMenuService(menuRepo))
	reviewController := controllers.NewReviewController(reviewRepo)
	cartController := controllers.NewCartController(services.NewCartService(cartRepo))
	paymentController := controllers.NewPaymentController(services.NewPaymentService(paymentRepo, cartRepo, stripe))
	statsController := controllers.NewStatsController(services.NewStatsService(statsRepo))

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	verify := middleware.VerifyJWT
	admin := middleware.RequireAdmin(userRepo)

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("bistro is running"))
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Post("/jwt", "auth.issue", authController.IssueToken)

	r.Get("/users", "users.list", userController.List, verify, admin)
	r.Post("/users", "users.register", userController.Register)
	r.Patch("/users/admin/{id}", "users.promote", userController.Promote, verify, admin)
	r.Get("/users/admin/{email}", "users.isAdmin", userController.IsAdmin, verify)
	r.Delete("/users/{email}", "users.delete", userController.Delete, verify, admin)

	r.Get("/menu", "menu.list", menuController.List)
	r.Post("/menu", "menu.add", menuController.Add, verify, admin)
	r.Delete("/menu/{id}", "menu.delete", menuController.Delete, verify, admin)

	r.Get("/reviews", "reviews.list", reviewController.List)

	r.Get("/carts", "carts.list", cartController.List, verify)
	r.Post("/carts", "carts.add", cartController.Add)
	r.Delete("/carts/{id}", "carts.remove", cartController.Remove)

	r.Post("/create-payment-intent", "payments.intent", paymentController.CreateIntent, verify)
	r.Post("/payments", "payments.record", paymentController.Record, verify)

	r.Get("/admin-stats", "stats.overview", statsController.Overview, verify, admin)
	r.Get("/order-stats", "stats.breakdown", statsController.CategoryBreakdown, verify, admin)
	r.Post("/order-stats/export", "stats.export", statsController.Export, verify, admin)

	r.Get("/ws/orders", "orders.feed", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}, verify, admin)
}
