package orgtree

import "errors"

// 哨兵错误：调用方通过 errors.Is 判断拒绝原因，具体的 id 信息由 %w 包装携带。
var (
	// ErrEmployeeNotFound 被移动的员工或目标上级不在树中
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrCycleDetected 目标上级就是员工本人，或位于员工自己的子树中
	ErrCycleDetected = errors.New("move would create a cycle")
	// ErrNoOpMove 目标上级与当前上级相同
	ErrNoOpMove = errors.New("employee already reports to this supervisor")
	// ErrEmptyHistory undo/redo 时对应的栈为空，属于安全的空操作
	ErrEmptyHistory = errors.New("no move to undo or redo")
	// ErrInvalidTree 构造组织树时输入不合法（空根节点、重复 id 等）
	ErrInvalidTree = errors.New("invalid organization tree")
)
