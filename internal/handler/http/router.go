package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/crestline-hr/timekeeping-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeeping-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", attendanceHandler.ClockIn)
			r.Post("/clock-out", attendanceHandler.ClockOut)
			r.Get("/status/{employeeID}", attendanceHandler.Status)

			r.Get("/daily/{employeeID}", attendanceHandler.GetDaily)
			r.Get("/day", attendanceHandler.ListDay)
			r.Delete("/day", attendanceHandler.ClearDay)
			r.Get("/range", attendanceHandler.ListRange)

			r.Post("/quick-entry", attendanceHandler.SaveQuickEntry)

			r.Route("/segments/{id}", func(r chi.Router) {
				r.Put("/times", attendanceHandler.UpdateTimes)
				r.Post("/overtime", attendanceHandler.DecideOvertime)
				r.Delete("/", attendanceHandler.Delete)
			})
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/summary/{employeeID}/{leaveTypeID}", leaveHandler.GetSummary)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/pending", leaveHandler.ListPendingRequests)
				r.Get("/employee/{employeeID}", leaveHandler.ListRequests)
				r.Post("/{id}/approve", leaveHandler.ApproveRequest)
				r.Post("/{id}/reject", leaveHandler.RejectRequest)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/leave/monthly/{employeeID}", reportHandler.EmployeeMonthlyLines)
			r.Get("/leave/matrix", reportHandler.AdminMonthlyMatrix)
			r.Get("/payroll", reportHandler.PayrollHoursSummary)
			r.Get("/overtime", reportHandler.OvertimeSummary)
			r.Get("/saturdays", reportHandler.SaturdayWorkReport)
		})
	})

	return r
}
