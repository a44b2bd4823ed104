package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/category"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/customer"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = db.AutoMigrate(
			&user.User{},
			&customer.Customer{},
			&category.Category{},
			&product.Product{},
			&cart.Cart{},
			&cart.Item{},
			&order.Order{},
			&order.Item{},
		); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
