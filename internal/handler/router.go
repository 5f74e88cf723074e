package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	sharedmw "github.com/vasapolrittideah/expense-tracker-api/shared/middleware"
)

// RouterParams bundles everything the router needs.
type RouterParams struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	UploadHandler    *UploadHandler
	IncomeHandler    *IncomeHandler
	ExpenseHandler   *ExpenseHandler
	DashboardHandler *DashboardHandler

	JWTAuth           auth.JWTAuthenticator
	AccessTokenSecret string
	Logger            *zerolog.Logger
}

// NewRouter assembles the HTTP routing table. The five auth/profile/upload
// paths are the contract the SPA was built against and keep their exact
// names.
func NewRouter(params RouterParams) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(params.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", params.AuthHandler.Register)
	r.Post("/login", params.AuthHandler.Login)
	r.Post("/auth/google", params.AuthHandler.GoogleSignIn)
	r.Post("/forgot-password", params.AuthHandler.ForgotPassword)
	r.Post("/reset-password", params.AuthHandler.ResetPassword)
	r.Post("/upload-image", params.UploadHandler.UploadImage)

	r.Group(func(r chi.Router) {
		r.Use(sharedmw.RequireAuth(params.JWTAuth, params.AccessTokenSecret))

		r.Get("/get-user", params.UserHandler.GetUser)
		r.Put("/update-profile", params.UserHandler.UpdateProfile)

		r.Route("/income", func(r chi.Router) {
			r.Post("/", params.IncomeHandler.AddIncome)
			r.Get("/", params.IncomeHandler.ListIncomes)
			r.Get("/export", params.IncomeHandler.ExportIncomes)
			r.Delete("/{id}", params.IncomeHandler.DeleteIncome)
		})

		r.Route("/expense", func(r chi.Router) {
			r.Post("/", params.ExpenseHandler.AddExpense)
			r.Get("/", params.ExpenseHandler.ListExpenses)
			r.Get("/export", params.ExpenseHandler.ExportExpenses)
			r.Delete("/{id}", params.ExpenseHandler.DeleteExpense)
		})

		r.Get("/dashboard", params.DashboardHandler.GetDashboard)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
