package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/Leganyst/viewing-platform/internal/auth"
	"github.com/Leganyst/viewing-platform/internal/service"
)

// NewRouter собирает HTTP-поверхность сервиса. Все мутирующие
// маршруты — за JWT-мидлварью.
func NewRouter(
	reservationSvc *service.ReservationService,
	videoSvc *service.VideoService,
	roomSvc *service.RoomService,
	workhourSvc *service.WorkhourService,
	jwtSecret []byte,
) http.Handler {
	validate := validator.New()

	reservations := NewReservationHandler(reservationSvc, validate)
	videos := NewVideoHandler(videoSvc, validate)
	rooms := NewRoomHandler(roomSvc, validate)
	workhours := NewWorkhourHandler(workhourSvc, validate)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		// Доступность слотов — публичная: её смотрят до логина.
		r.Get("/reservations/available-times", reservations.AvailableTimes)
		r.Get("/rooms/{id}", rooms.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			r.Post("/reservations", reservations.Create)
			r.Get("/reservations", reservations.ListMy)
			r.Patch("/reservations/{id}/cancel", reservations.Cancel)
			r.Patch("/reservations/{id}/confirm", reservations.Confirm)
			r.Get("/agents/reservations", reservations.ListForAgent)

			r.Post("/videos", videos.Register)
			r.Get("/videos/{id}", videos.Get)
			r.Patch("/videos/{id}", videos.Finalize)

			r.Post("/rooms", rooms.Create)
			r.Get("/agents/rooms", rooms.ListMine)
			r.Patch("/rooms/{id}", rooms.Update)
			r.Delete("/rooms/{id}", rooms.Delete)

			r.Put("/agents/workhour", workhours.Upsert)
			r.Get("/agents/workhour", workhours.Get)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
