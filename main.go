package main

import (
	"fmt"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/backup"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/config"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/database"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	scheduler, err := backup.NewScheduler(cfg.Database.Path, cfg.Backup.Dir,
		cfg.Backup.Schedule, cfg.Backup.Keep, logger)
	if err != nil {
		logger.Fatalf("init backup scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := router.SetupRouter(cfg, db, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Infof("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("run server: %v", err)
	}
}
