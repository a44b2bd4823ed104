package main

import (
	"context"
	"log"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/category"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/logging"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/repository/mysql"
)

// 初始化目录数据：三个分类和一批冰球装备商品，价格单位为分
func main() {
	logging.Init()

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db := mysql.Init(&cfg.MySQL)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)

	ctx := context.Background()

	categories := []*category.Category{
		{Name: "球杆", Slug: "sticks"},
		{Name: "冰鞋", Slug: "skates"},
		{Name: "护具配件", Slug: "accessories"},
	}
	for _, c := range categories {
		if _, err := categoryRepo.GetBySlug(ctx, c.Slug); err == nil {
			log.Printf("category %s exists, skip", c.Slug)
			continue
		}
		if err := categoryRepo.Create(ctx, c); err != nil {
			log.Fatalf("create category %s: %v", c.Slug, err)
		}
		log.Printf("created category %s (id=%d)", c.Slug, c.ID)
	}

	bySlug := map[string]int64{}
	for _, c := range categories {
		got, err := categoryRepo.GetBySlug(ctx, c.Slug)
		if err != nil {
			log.Fatalf("load category %s: %v", c.Slug, err)
		}
		bySlug[c.Slug] = got.ID
	}

	products := []*product.Product{
		{
			CategoryID: bySlug["sticks"], Title: "Bauer Vapor X3 球杆", Slug: "bauer-vapor-x3",
			Description: "中级碳纤维球杆", Price: 89900, Status: product.StatusOnline,
			AgeGroup: "成人", Flex: 87, Material: "碳纤维", Curvature: "P92", WeightGrams: 420,
		},
		{
			CategoryID: bySlug["sticks"], Title: "CCM Ribcor Trigger 球杆", Slug: "ccm-ribcor-trigger",
			Description: "轻量进攻型球杆", Price: 129900, Status: product.StatusOnline,
			AgeGroup: "成人", Flex: 75, Material: "碳纤维", Curvature: "P29", WeightGrams: 390,
		},
		{
			CategoryID: bySlug["sticks"], Title: "少年训练球杆", Slug: "junior-stick",
			Description: "入门级少年球杆", Price: 29900, Status: product.StatusOnline,
			AgeGroup: "少年", Flex: 50, Material: "复合材料", Curvature: "P88", WeightGrams: 350,
		},
		{
			CategoryID: bySlug["skates"], Title: "Bauer Supreme M4 冰鞋", Slug: "bauer-supreme-m4",
			Description: "全包裹中级冰鞋", Price: 159900, Status: product.StatusOnline,
			AgeGroup: "成人", Fullness: "D",
		},
		{
			CategoryID: bySlug["skates"], Title: "CCM Tacks 冰鞋", Slug: "ccm-tacks",
			Description: "宽楦舒适冰鞋", Price: 119900, Status: product.StatusOnline,
			AgeGroup: "成人", Fullness: "EE",
		},
		{
			CategoryID: bySlug["accessories"], Title: "冰球护腿", Slug: "shin-guards",
			Description: "标准护腿一对", Price: 25900, Status: product.StatusOnline,
			AgeGroup: "成人",
		},
		{
			CategoryID: bySlug["accessories"], Title: "比赛用冰球（3 只装）", Slug: "pucks-3pack",
			Description: "官方规格硫化橡胶冰球", Price: 5500, Status: product.StatusOnline,
		},
	}

	for _, p := range products {
		if _, err := productRepo.GetBySlug(ctx, p.Slug); err == nil {
			log.Printf("product %s exists, skip", p.Slug)
			continue
		}
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatalf("create product %s: %v", p.Slug, err)
		}
		log.Printf("created product %s (id=%d)", p.Slug, p.ID)
	}

	log.Println("seed done")
}
