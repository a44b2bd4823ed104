package server

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
	"go.uber.org/zap"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/auth"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/infra/mq"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/infra/redis"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/middleware"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/mysql"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/service"
	webcontrollers "github.com/VladimirZHC/Simple-e-commerce-hockey-app/web/controllers"
)

// RegisterRoutes 注册前台商城的 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 静态资源与首页
	app.HandleDir("/assets", iris.Dir("./web/assets"))
	app.Get("/", func(ctx iris.Context) {
		_ = ctx.ServeFile("./web/index.html")
	})

	// 匿名购物车靠会话 cookie 识别
	sess := sessions.New(sessions.Config{
		Cookie:  "hockeyshop_session",
		Expires: 7 * 24 * time.Hour,
	})
	app.Use(sess.Handler())

	// 仓储与服务
	txManager := mysql.NewTxManager(db)
	userRepo := mysql.NewUserRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	userSvc := service.NewUserService(userRepo, customerRepo, &cfg.JWT)
	customerSvc := service.NewCustomerService(customerRepo, orderRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo, txManager)
	checkoutSvc := service.NewCheckoutService(cartRepo, productRepo, orderRepo, txManager, mqConn)
	orderSvc := service.NewOrderService(orderRepo)

	tokenCache := auth.NewTokenCache(redisClient, time.Duration(cfg.JWT.TokenCacheTTLSeconds)*time.Second)

	// resolveClaims 解析 Authorization 头，命中 Redis 缓存则跳过签名校验
	resolveClaims := func(ctx iris.Context) *auth.Claims {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			return nil
		}
		if claims, ok, err := tokenCache.Get(ctx.Request().Context(), token); err == nil && ok {
			return claims
		}
		claims, err := auth.ParseToken(&cfg.JWT, token)
		if err != nil {
			return nil
		}
		if err := tokenCache.Set(ctx.Request().Context(), token, claims); err != nil {
			zap.L().Warn("cache token claims failed", zap.Error(err))
		}
		return claims
	}

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 用户注册/登录
	api.Post("/register", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Email    string `json:"email"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), req.Username, req.Password, req.Email)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": u})
	})

	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"token": token}})
	})

	// 商品目录（无需登录）
	api.Get("/categories", func(ctx iris.Context) {
		list, err := productSvc.ListCategories(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/products", func(ctx iris.Context) {
		categorySlug := ctx.URLParam("category")
		keyword := ctx.URLParam("q")

		list, err := productSvc.ListByCategorySlug(ctx.Request().Context(), categorySlug)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		if keyword != "" {
			list, err = productSvc.Search(ctx.Request().Context(), keyword)
			if err != nil {
				ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
				return
			}
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/products/{slug:string}", func(ctx iris.Context) {
		slug := ctx.Params().Get("slug")
		p, err := productSvc.GetBySlug(ctx.Request().Context(), slug)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "商品不存在"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// currentCart 解析当前调用方的购物车：
	// 已登录走购买者购物车，未登录以会话 ID 懒建匿名购物车。
	currentCart := func(ctx iris.Context) (int64, error) {
		if claims := resolveClaims(ctx); claims != nil {
			cust, err := customerSvc.GetByUserID(ctx.Request().Context(), claims.UserID)
			if err != nil {
				return 0, err
			}
			c, err := cartSvc.GetOrCreateForCustomer(ctx.Request().Context(), cust.ID)
			if err != nil {
				return 0, err
			}
			return c.ID, nil
		}
		c, err := cartSvc.GetOrCreateForSession(ctx.Request().Context(), sessions.Get(ctx).ID())
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	}

	// 购物车
	api.Get("/cart", func(ctx iris.Context) {
		cartID, err := currentCart(ctx)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		c, err := cartSvc.Get(ctx.Request().Context(), cartID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Post("/cart/items", func(ctx iris.Context) {
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		cartID, err := currentCart(ctx)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		c, err := cartSvc.AddItem(ctx.Request().Context(), cartID, req.ProductID, req.Quantity)
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Put("/cart/items/{productID:int64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetInt64("productID")
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		cartID, err := currentCart(ctx)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		c, err := cartSvc.SetItem(ctx.Request().Context(), cartID, pid, req.Quantity)
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Delete("/cart/items/{productID:int64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetInt64("productID")
		cartID, err := currentCart(ctx)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		c, err := cartSvc.RemoveItem(ctx.Request().Context(), cartID, pid)
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	// 需要登录的接口
	authAPI := api.Party("/", func(ctx iris.Context) {
		claims := resolveClaims(ctx)
		if claims == nil {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "missing or invalid token"})
			return
		}
		ctx.Values().Set("user_id", claims.UserID)
		ctx.Values().Set("username", claims.Username)
		ctx.Next()
	})

	// 结算下单
	authAPI.Post("/checkout", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		var req struct {
			FirstName  string `json:"first_name"`
			LastName   string `json:"last_name"`
			Phone      string `json:"phone"`
			Address    string `json:"address"`
			Comment    string `json:"comment"`
			BuyingType string `json:"buying_type"`
			OrderDate  string `json:"order_date"` // YYYY-MM-DD
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}

		userID := ctx.Values().GetInt64Default("user_id", 0)
		cust, err := customerSvc.GetByUserID(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		c, err := cartSvc.GetOrCreateForCustomer(ctx.Request().Context(), cust.ID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}

		form := service.CheckoutForm{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Address:    req.Address,
			Comment:    req.Comment,
			BuyingType: order.BuyingType(req.BuyingType),
		}
		if req.OrderDate != "" {
			if d, err := time.Parse("2006-01-02", req.OrderDate); err == nil {
				form.OrderDate = d
			}
		}

		o, err := checkoutSvc.Checkout(ctx.Request().Context(), c.ID, cust.ID, form)
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 个人中心：历史订单
	authAPI.Get("/orders", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		cust, err := customerSvc.GetByUserID(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		list, err := customerSvc.ListOrders(ctx.Request().Context(), cust.ID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	authAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		o, err := orderSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "订单不存在"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 个人资料
	authAPI.Get("/profile", func(ctx iris.Context) {
		userID := ctx.Values().GetInt64Default("user_id", 0)
		cust, err := customerSvc.GetByUserID(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": cust})
	})

	authAPI.Put("/profile", func(ctx iris.Context) {
		var req struct {
			Phone   string `json:"phone"`
			Address string `json:"address"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		userID := ctx.Values().GetInt64Default("user_id", 0)
		cust, err := customerSvc.GetByUserID(ctx.Request().Context(), userID)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		updated, err := customerSvc.UpdateContact(ctx.Request().Context(), cust.ID, req.Phone, req.Address)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": updated})
	})

	// ---------------- 前台页面路由 ----------------

	// 商品详情页：/product/{slug}
	app.Get("/product/{slug:string}", func(ctx iris.Context) {
		slug := ctx.Params().Get("slug")
		p, err := productSvc.GetBySlug(ctx.Request().Context(), slug)
		if err != nil {
			ctx.Application().Logger().Warnf("查询商品失败 (slug: %s): %v", slug, err)
			ctx.ViewLayout("shared/layout.html")
			_ = ctx.View("shared/error.html", iris.Map{
				"showMessage": "商品不存在或已下架",
			})
			return
		}
		ctx.ViewLayout("shared/layout.html")
		if err := ctx.View("product/view.html", iris.Map{"product": p}); err != nil {
			ctx.Application().Logger().Errorf("渲染商品详情页失败: %v", err)
		}
	})

	// 用户登录 / 注册表单路由
	userController := webcontrollers.NewUserController(userSvc)
	app.Get("/login", userController.ShowLogin)
	app.Get("/register", userController.ShowRegister)
	app.Post("/user/login", userController.PostLogin)
	app.Post("/user/add", userController.PostAdd)
	app.Get("/user/logout", userController.Logout)
}
