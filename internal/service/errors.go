package service

import (
	"errors"
	"org_chart_go/internal/orgtree"
)

// 哨兵错误：对外统一语义，handler 只依赖这里的错误做状态码映射
var (
	// ErrInvalidInput 请求参数不合法（如 id <= 0）
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal 内部错误（对外不暴露细节）
	ErrInternal = errors.New("internal server error")

	ErrEmployeeNotFound = orgtree.ErrEmployeeNotFound
	ErrCycleDetected    = orgtree.ErrCycleDetected
	ErrNoOpMove         = orgtree.ErrNoOpMove
	ErrInvalidTree      = orgtree.ErrInvalidTree
)
