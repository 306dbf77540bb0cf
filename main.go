package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"

	"itbird-backend/config"
	"itbird-backend/controllers/githubapi"
	"itbird-backend/controllers/httpcors"
	"itbird-backend/jobs"
	"itbird-backend/logger"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
	"itbird-backend/router"
	"itbird-backend/services"
	"itbird-backend/ws"
)

func main() {
	cfg := config.Load()
	logger.Init(slog.LevelInfo)

	// Инициализируем базу данных
	if err := config.InitDB(); err != nil {
		slog.Error("ошибка инициализации базы данных", "error", err)
		os.Exit(1)
	}

	// Выполняем миграцию базы данных
	err := config.DB.AutoMigrate(
		&users.User{},
		&social.Friendship{},
		&social.Chat{},
		&social.Message{},
		&social.News{},
		&social.Post{},
		&social.Forum{},
		&social.Answer{},
		&social.Repository{},
	)
	if err != nil {
		slog.Error("ошибка миграции базы данных", "error", err)
		os.Exit(1)
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		slog.Error("ошибка получения подключения к базе данных", "error", err)
		os.Exit(1)
	}
	if err := sqlDB.Ping(); err != nil {
		slog.Error("ошибка подключения к базе данных", "error", err)
		os.Exit(1)
	}
	slog.Info("подключение к базе данных успешно")

	githubapi.Client = services.NewGitHubClient(cfg.GithubToken)

	go ws.DefaultHub.Run()

	c := cron.New()
	c.AddJob("@daily", jobs.NewRepoSyncJob(githubapi.Client))
	c.Start()

	handler := httpcors.Settings().Handler(router.New())

	// Запускаем сервер
	slog.Info("сервер запущен", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		slog.Error("ошибка запуска сервера", "error", err)
		os.Exit(1)
	}
}
