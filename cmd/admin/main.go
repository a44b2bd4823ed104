package main

import (
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/logging"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/server"
)

func main() {
	logging.Init()

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Fatalf("failed to run admin server: %v", err)
	}
}
