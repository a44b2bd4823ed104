package service

import "errors"

// 业务校验错误，路由层统一转成 4xx 返回给调用方
var (
	ErrInvalidQuantity         = errors.New("商品数量无效")
	ErrProductUnavailable      = errors.New("商品不存在或已下架")
	ErrEmptyCart               = errors.New("购物车为空")
	ErrCartAlreadyOrdered      = errors.New("购物车已生成订单")
	ErrInvalidStatusTransition = errors.New("订单状态只能按顺序向前流转")
	ErrInvalidBuyingType       = errors.New("收货方式无效")
	ErrResolutionOutOfBounds   = errors.New("图片分辨率超出允许范围")
	ErrImageTooLarge           = errors.New("图片文件过大")
)
