package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Leganyst/viewing-platform/internal/config"
	"github.com/Leganyst/viewing-platform/internal/db"
	"github.com/Leganyst/viewing-platform/internal/handler"
	"github.com/Leganyst/viewing-platform/internal/model"
	"github.com/Leganyst/viewing-platform/internal/repository"
	"github.com/Leganyst/viewing-platform/internal/service"
	"github.com/Leganyst/viewing-platform/internal/webrtc"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Подхватываем .env, если он есть, и грузим конфиги.
	_ = godotenv.Load()

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}

	initLogger(appCfg)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	reservationRepo := repository.NewGormReservationRepository(gormDB)
	roomRepo := repository.NewGormRoomRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	agentRepo := repository.NewGormAgentRepository(gormDB)
	videoRepo := repository.NewGormVideoRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	sessions := webrtc.NewMemorySessionStore()

	// 5. Сервисы ядра.
	reservationSvc := service.NewReservationService(
		reservationRepo, roomRepo, userRepo, agentRepo, videoRepo, eventRepo, sessions,
	)
	videoSvc := service.NewVideoService(videoRepo, reservationRepo)
	roomSvc := service.NewRoomService(roomRepo, agentRepo)
	workhourSvc := service.NewWorkhourService(agentRepo)

	// 6. HTTP-сервер.
	router := handler.NewRouter(reservationSvc, videoSvc, roomSvc, workhourSvc, []byte(appCfg.JWTSecret))
	srv := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("viewing core listening", "addr", appCfg.HTTPAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func initLogger(cfg *config.AppConfig) {
	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
