package server

import (
	"errors"
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/category"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/mysql"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/service"
)

// productRequest 后台创建/更新商品的请求体，价格单位为分
type productRequest struct {
	CategoryID  int64  `json:"category_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Status      *int   `json:"status"`

	AgeGroup    string `json:"age_group"`
	Flex        int    `json:"flex"`
	Material    string `json:"material"`
	Curvature   string `json:"curvature"`
	WeightGrams int    `json:"weight_grams"`
	Fullness    string `json:"fullness"`
}

func (r *productRequest) applyTo(p *product.Product, partial bool) error {
	if !partial || r.Title != "" {
		if r.Title == "" {
			return errors.New("商品名称不能为空")
		}
		p.Title = r.Title
	}
	if !partial || r.Slug != "" {
		if r.Slug == "" {
			return errors.New("slug 不能为空")
		}
		p.Slug = r.Slug
	}
	if r.Price < 0 {
		return errors.New("价格不能为负")
	}
	if !partial || r.Price > 0 {
		p.Price = r.Price
	}
	if r.CategoryID != 0 {
		p.CategoryID = r.CategoryID
	}
	if r.Description != "" {
		p.Description = r.Description
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	p.AgeGroup = r.AgeGroup
	p.Flex = r.Flex
	p.Material = r.Material
	p.Curvature = r.Curvature
	p.WeightGrams = r.WeightGrams
	p.Fullness = r.Fullness
	return nil
}

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)

	// 仓储与服务
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)

	productSvc := service.NewProductService(productRepo, categoryRepo)
	orderSvc := service.NewOrderService(orderRepo)
	customerSvc := service.NewCustomerService(customerRepo, orderRepo)
	imageSvc := service.NewImageService(&cfg.Media)

	// 静态资源
	app.HandleDir("/assets", iris.Dir("./web/admin/assets"))
	app.Get("/", func(ctx iris.Context) {
		_ = ctx.ServeFile("./web/admin/index.html")
	})

	api := app.Party("/api")

	// ---------- 分类管理 ----------

	api.Get("/categories", func(ctx iris.Context) {
		list, err := productSvc.ListCategories(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/categories", func(ctx iris.Context) {
		var req struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		if err := ctx.ReadJSON(&req); err != nil || req.Name == "" || req.Slug == "" {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "分类名称和 slug 不能为空"})
			return
		}
		c := &category.Category{Name: req.Name, Slug: req.Slug}
		if err := productSvc.CreateCategory(ctx.Request().Context(), c); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": c})
	})

	api.Delete("/categories/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := productSvc.DeleteCategory(ctx.Request().Context(), id); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0})
	})

	// ---------- 商品管理 ----------

	// 商品列表（后台用：返回所有商品）
	api.Get("/products", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 创建商品
	api.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{Status: product.StatusOnline}
		if err := req.applyTo(p, false); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 更新商品
	api.Put("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p, true); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 删除商品（仅下架不删行，订单条目持有快照不受影响）
	api.Delete("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}
		p.Status = product.StatusOffline
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 上传商品图片：multipart 表单字段 image，
	// 流水线校验分辨率与大小后生成统一缩略图。
	api.Post("/products/{id:int64}/image", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
			return
		}

		file, _, err := ctx.FormFile("image")
		if err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "缺少 image 文件字段"})
			return
		}
		defer file.Close()

		path, err := imageSvc.SaveFor(p.Slug, file)
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		p.Image = path
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// ---------- 订单管理 ----------

	// 最近订单列表
	api.Get("/orders", func(ctx iris.Context) {
		limitStr := ctx.URLParamDefault("limit", "20")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			limit = 20
		}
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	// 订单详情（含快照条目）
	api.Get("/orders/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		o, err := orderSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "order not found"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// 推进订单状态（只允许到直接后继）
	api.Post("/orders/{id:int64}/status", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		o, err := orderSvc.AdvanceStatus(ctx.Request().Context(), id, order.Status(req.Status))
		if err != nil {
			stopWithBusinessError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": o})
	})

	// ---------- 购买者管理 ----------

	api.Get("/customers", func(ctx iris.Context) {
		list, err := customerRepo.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Get("/customers/{id:int64}/orders", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		list, err := customerSvc.ListOrders(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})
}
