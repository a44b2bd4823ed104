package logging

import (
	"sync"

	"go.uber.org/zap"
)

var once sync.Once

// Init 初始化全局 zap 日志器，业务代码统一通过 zap.L() 使用
func Init() {
	once.Do(func() {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		zap.ReplaceGlobals(logger)
	})
}
