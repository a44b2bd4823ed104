package service

import "context"

// TxManager 事务边界抽象。mysql 实现基于 GORM 事务，
// memory 实现基于全局写锁，语义一致：fn 内的仓储操作要么全部生效要么全部回滚。
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
