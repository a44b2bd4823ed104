package service

import (
	"context"
	"strings"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/category"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
)

// ProductService 商品与分类的目录逻辑
type ProductService struct {
	repo         product.Repository
	categoryRepo category.Repository
}

func NewProductService(repo product.Repository, categoryRepo category.Repository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

func (s *ProductService) ListOnline(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListOnline(ctx)
}

func (s *ProductService) ListAll(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListAll(ctx)
}

// ListByCategorySlug 按分类 slug 过滤在售商品，空 slug 返回全部在售
func (s *ProductService) ListByCategorySlug(ctx context.Context, slug string) ([]*product.Product, error) {
	if slug == "" || slug == "all" {
		return s.repo.ListOnline(ctx)
	}
	c, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, c.ID)
}

// Search 在售商品按名称关键字过滤（内存过滤，目录规模小）
func (s *ProductService) Search(ctx context.Context, keyword string) ([]*product.Product, error) {
	list, err := s.repo.ListOnline(ctx)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return list, nil
	}
	kw := strings.ToLower(keyword)
	filtered := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Title), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListCategories 全部分类
func (s *ProductService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

// CreateCategory 新建分类
func (s *ProductService) CreateCategory(ctx context.Context, c *category.Category) error {
	return s.categoryRepo.Create(ctx, c)
}

// UpdateCategory 更新分类
func (s *ProductService) UpdateCategory(ctx context.Context, c *category.Category) error {
	return s.categoryRepo.Update(ctx, c)
}

// DeleteCategory 删除分类
func (s *ProductService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
