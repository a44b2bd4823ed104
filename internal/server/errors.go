package server

import (
	"errors"

	"github.com/kataras/iris/v12"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/service"
)

// stopWithBusinessError 把业务校验错误映射为 4xx，其余按 500 处理
func stopWithBusinessError(ctx iris.Context, err error) {
	code := 500
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidBuyingType),
		errors.Is(err, service.ErrResolutionOutOfBounds),
		errors.Is(err, service.ErrImageTooLarge):
		code = 400
	case errors.Is(err, service.ErrProductUnavailable):
		code = 404
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrCartAlreadyOrdered),
		errors.Is(err, service.ErrInvalidStatusTransition):
		code = 409
	}
	ctx.StopWithJSON(code, iris.Map{"code": code, "msg": err.Error()})
}
