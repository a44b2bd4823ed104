// Package memory 提供与 mysql 仓储同接口的内存实现，
// 用于单元测试和离线演示（cmd/demo），不依赖外部服务。
package memory

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/cart"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/category"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/customer"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/order"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/product"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/datamodels/user"
)

// ErrNotFound 与 mysql 仓储保持同一哨兵，便于上层统一 errors.Is 判断
var ErrNotFound = gorm.ErrRecordNotFound

// Store 各实体共用的内存存储与自增 ID 生成器
type Store struct {
	mu sync.RWMutex

	nextID map[string]int64

	users      map[int64]user.User
	customers  map[int64]customer.Customer
	categories map[int64]category.Category
	products   map[int64]product.Product
	carts      map[int64]cart.Cart
	cartItems  map[int64]cart.Item
	orders     map[int64]order.Order
	orderItems map[int64]order.Item
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		nextID:     make(map[string]int64),
		users:      make(map[int64]user.User),
		customers:  make(map[int64]customer.Customer),
		categories: make(map[int64]category.Category),
		products:   make(map[int64]product.Product),
		carts:      make(map[int64]cart.Cart),
		cartItems:  make(map[int64]cart.Item),
		orders:     make(map[int64]order.Order),
		orderItems: make(map[int64]order.Item),
	}
}

func (s *Store) genID(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// 事务标记：WithTransaction 持有写锁后在 context 打标，
// 仓储方法看到标记就跳过自身加锁，避免重入死锁。
type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (s *Store) rlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RLock()
	}
}

func (s *Store) runlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.RUnlock()
	}
}

func (s *Store) wlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Lock()
	}
}

func (s *Store) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		s.mu.Unlock()
	}
}

// Tx 以全局写锁模拟事务边界，实现 service.TxManager
type Tx struct {
	store *Store
}

// NewTx 创建内存事务管理器
func NewTx(store *Store) *Tx {
	return &Tx{store: store}
}

func (t *Tx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// ---------------- 用户 ----------------

type Users struct{ store *Store }

func NewUsers(store *Store) *Users { return &Users{store: store} }

var _ user.Repository = (*Users)(nil)

func (r *Users) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	u, ok := r.store.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *Users) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, u := range r.store.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Users) Create(ctx context.Context, u *user.User) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	u.ID = r.store.genID("users")
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.store.users[u.ID] = *u
	return nil
}

func (r *Users) ListAll(ctx context.Context) ([]*user.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := u
		out = append(out, &cp)
	}
	return out, nil
}

// ---------------- 购买者 ----------------

type Customers struct{ store *Store }

func NewCustomers(store *Store) *Customers { return &Customers{store: store} }

var _ customer.Repository = (*Customers)(nil)

func (r *Customers) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	c, ok := r.store.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *Customers) GetByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, c := range r.store.customers {
		if c.UserID == userID {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Customers) Create(ctx context.Context, c *customer.Customer) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.ID = r.store.genID("customers")
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.store.customers[c.ID] = *c
	return nil
}

func (r *Customers) Update(ctx context.Context, c *customer.Customer) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.customers[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.store.customers[c.ID] = *c
	return nil
}

func (r *Customers) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*customer.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

// ---------------- 分类 ----------------

type Categories struct{ store *Store }

func NewCategories(store *Store) *Categories { return &Categories{store: store} }

var _ category.Repository = (*Categories)(nil)

func (r *Categories) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	c, ok := r.store.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *Categories) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, c := range r.store.categories {
		if c.Slug == slug {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Categories) ListAll(ctx context.Context) ([]*category.Category, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*category.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Categories) Create(ctx context.Context, c *category.Category) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.ID = r.store.genID("categories")
	r.store.categories[c.ID] = *c
	return nil
}

func (r *Categories) Update(ctx context.Context, c *category.Category) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.categories[c.ID]; !ok {
		return ErrNotFound
	}
	r.store.categories[c.ID] = *c
	return nil
}

func (r *Categories) Delete(ctx context.Context, id int64) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.categories, id)
	return nil
}

// ---------------- 商品 ----------------

type Products struct{ store *Store }

func NewProducts(store *Store) *Products { return &Products{store: store} }

var _ product.Repository = (*Products)(nil)

func (r *Products) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	p, ok := r.store.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *Products) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, p := range r.store.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Products) ListAll(ctx context.Context) ([]*product.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*product.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Products) ListOnline(ctx context.Context) ([]*product.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*product.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if p.Status == product.StatusOnline {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Products) ListByCategory(ctx context.Context, categoryID int64) ([]*product.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*product.Product, 0)
	for _, p := range r.store.products {
		if p.Status == product.StatusOnline && p.CategoryID == categoryID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Products) Create(ctx context.Context, p *product.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	p.ID = r.store.genID("products")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.store.products[p.ID] = *p
	return nil
}

func (r *Products) Update(ctx context.Context, p *product.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.products[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.store.products[p.ID] = *p
	return nil
}

func (r *Products) Delete(ctx context.Context, id int64) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

// ---------------- 购物车 ----------------

type Carts struct{ store *Store }

func NewCarts(store *Store) *Carts { return &Carts{store: store} }

var _ cart.Repository = (*Carts)(nil)

func (r *Carts) GetByID(ctx context.Context, id int64) (*cart.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	c, ok := r.store.carts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

// GetByIDForUpdate 内存实现依赖事务写锁，与 GetByID 等价
func (r *Carts) GetByIDForUpdate(ctx context.Context, id int64) (*cart.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r *Carts) GetActiveByCustomer(ctx context.Context, customerID int64) (*cart.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, c := range r.store.carts {
		if c.CustomerID != nil && *c.CustomerID == customerID && !c.InOrder {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Carts) GetActiveBySession(ctx context.Context, token string) (*cart.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, c := range r.store.carts {
		if c.ForAnonymousUser && c.SessionToken == token && !c.InOrder {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Carts) Create(ctx context.Context, c *cart.Cart) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.ID = r.store.genID("carts")
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.store.carts[c.ID] = *c
	return nil
}

func (r *Carts) Update(ctx context.Context, c *cart.Cart) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.carts[c.ID]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.store.carts[c.ID] = *c
	return nil
}

func (r *Carts) GetItem(ctx context.Context, cartID, productID int64) (*cart.Item, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, it := range r.store.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			cp := it
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Carts) ListItems(ctx context.Context, cartID int64) ([]*cart.Item, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*cart.Item, 0)
	for _, it := range r.store.cartItems {
		if it.CartID == cartID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Carts) SaveItem(ctx context.Context, it *cart.Item) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if it.ID == 0 {
		it.ID = r.store.genID("cart_items")
		it.CreatedAt = time.Now()
	}
	it.UpdatedAt = time.Now()
	r.store.cartItems[it.ID] = *it
	return nil
}

func (r *Carts) DeleteItem(ctx context.Context, cartID, productID int64) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	for id, it := range r.store.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			delete(r.store.cartItems, id)
			return nil
		}
	}
	return nil
}

// ---------------- 订单 ----------------

type Orders struct{ store *Store }

func NewOrders(store *Store) *Orders { return &Orders{store: store} }

var _ order.Repository = (*Orders)(nil)

func (r *Orders) Create(ctx context.Context, o *order.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	o.ID = r.store.genID("orders")
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	for _, it := range o.Items {
		it.ID = r.store.genID("order_items")
		it.OrderID = o.ID
		it.CreatedAt = o.CreatedAt
		r.store.orderItems[it.ID] = *it
	}
	r.store.orders[o.ID] = *o
	return nil
}

func (r *Orders) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	o, ok := r.store.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (r *Orders) Update(ctx context.Context, o *order.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.orders[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now()
	r.store.orders[o.ID] = *o
	return nil
}

func (r *Orders) ListByCustomer(ctx context.Context, customerID int64) ([]*order.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*order.Order, 0)
	for _, o := range r.store.orders {
		if o.CustomerID == customerID {
			cp := o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Orders) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*order.Order, 0)
	// 按 ID 逆序取最近的订单
	for id := r.store.nextID["orders"]; id >= 1 && len(out) < limit; id-- {
		if o, ok := r.store.orders[id]; ok {
			cp := o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Orders) ListItems(ctx context.Context, orderID int64) ([]*order.Item, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]*order.Item, 0)
	for _, it := range r.store.orderItems {
		if it.OrderID == orderID {
			cp := it
			out = append(out, &cp)
		}
	}
	return out, nil
}
