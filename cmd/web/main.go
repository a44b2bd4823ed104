package main

import (
	"fmt"
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/logging"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/server"
)

func main() {
	logging.Init()

	// 加载配置（默认配置 + 可选的 ./config/config.yaml）
	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app := iris.New()
	// 注册 HTML 模板引擎，使用本项目下的 web/views 目录
	tmpl := iris.HTML("./web/views", ".html")
	tmpl.Reload(true) // 开发模式下启用热重载，方便调试

	// 价格格式化函数：分转元（例如 10990 -> ¥109.90）
	tmpl.AddFunc("formatPrice", func(price int64) string {
		return fmt.Sprintf("¥%.2f", float64(price)/100.0)
	})

	app.RegisterView(tmpl)

	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Fatalf("failed to run web server: %v", err)
	}
}
