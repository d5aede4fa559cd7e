package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/user"
	"github.com/koenig-hr/fnf-backend-go/internal/handler/http/middleware"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	settlementHandler SettlementHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fnf-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))

				r.Post("/password", authHandler.SetPassword)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeView))
					r.Get("/", employeeHandler.List)
					r.Get("/fields", employeeHandler.ListFieldNames)
					r.Get("/{id}", employeeHandler.Get)
				})

				r.With(middleware.RequirePermission(user.PermissionEmployeeImport)).
					Put("/", employeeHandler.BulkUpsert)
			})

			r.Route("/settlements", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettlementView))
					r.Get("/", settlementHandler.List)
					r.Get("/{employeeID}", settlementHandler.Get)
					r.Get("/{employeeID}/statement", settlementHandler.Statement)
				})

				// Payroll prepares and pays out
				r.With(middleware.RequirePermission(user.PermissionSettlementCompute)).
					Post("/compute", settlementHandler.Compute)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettlementSubmit))
					r.Post("/draft", settlementHandler.SaveDraft)
					r.Post("/", settlementHandler.Submit)
				})
				r.With(middleware.RequirePermission(user.PermissionSettlementProcessPayment)).
					Post("/{employeeID}/process-payment", settlementHandler.ProcessPayment)

				// Tax reviews
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettlementReview))
					r.Post("/{employeeID}/start-review", settlementHandler.StartReview)
					r.Post("/{employeeID}/review", settlementHandler.Review)
				})
			})
		})
	})

	// plain liveness probe for load balancers without the /health heartbeat
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
