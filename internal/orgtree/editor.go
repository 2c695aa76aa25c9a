// Package orgtree 实现组织树的调岗引擎：移动校验、移动执行以及基于命令历史的 undo/redo。
//
// Editor 本身不加锁，同一个 Editor 的所有调用必须由调用方串行化。
package orgtree

import (
	"fmt"

	"org_chart_go/internal/model"
)

// Move 记录一次调岗，足以重新执行，也足以精确撤销。
// SubordinateIDs 是发起移动那一刻员工直属下属的有序快照（只存 id，不引用活动切片）。
type Move struct {
	EmployeeID       int64   `json:"employeeId"`
	NewSupervisorID  int64   `json:"newSupervisorId"`
	OldSupervisorID  int64   `json:"oldSupervisorId"`
	HasOldSupervisor bool    `json:"hasOldSupervisor"`
	OldIndex         int     `json:"oldIndex"`
	SubordinateIDs   []int64 `json:"subordinateIds"`
}

func (m Move) clone() Move {
	m.SubordinateIDs = append([]int64(nil), m.SubordinateIDs...)
	return m
}

// Editor 持有组织树根节点以及两个历史栈。
type Editor struct {
	ceo       *model.Employee
	undoStack []Move
	redoStack []Move
}

// New 以 ceo 为根创建 Editor，要求根节点非空且整棵树内 id 不重复。
func New(ceo *model.Employee) (*Editor, error) {
	if ceo == nil {
		return nil, fmt.Errorf("nil ceo: %w", ErrInvalidTree)
	}
	seen := make(map[int64]struct{})
	var dup int64
	ok := walk(ceo, func(e *model.Employee) bool {
		if _, exists := seen[e.UniqueID]; exists {
			dup = e.UniqueID
			return false
		}
		seen[e.UniqueID] = struct{}{}
		return true
	})
	if !ok {
		return nil, fmt.Errorf("duplicate employee id %d: %w", dup, ErrInvalidTree)
	}
	return &Editor{ceo: ceo}, nil
}

// CEO 返回当前根节点，调用方只应读取，不应直接修改。
func (ed *Editor) CEO() *model.Employee {
	return ed.ceo
}

// Find 在当前树中按 id 查找员工
func (ed *Editor) Find(id int64) *model.Employee {
	return Find(ed.ceo, id)
}

// FindSupervisor 返回员工当前的直接上级，根节点返回 nil
func (ed *Editor) FindSupervisor(id int64) *model.Employee {
	return FindSupervisor(ed.ceo, id)
}

// Validate 判断把 employeeID 调到 supervisorID 之下是否合法，不修改任何状态。
// 返回 nil 表示可以执行；否则返回 ErrEmployeeNotFound / ErrCycleDetected / ErrNoOpMove 之一。
func (ed *Editor) Validate(employeeID, supervisorID int64) error {
	_, err := ed.prepare(employeeID, supervisorID)
	return err
}

// Move 把 employeeID 调到 supervisorID 之下。
// 员工原有的直属下属同时挂到员工的原上级名下，员工自己的下属列表不清空。
// 校验失败时树和历史栈都不发生变化；成功时清空 redo 栈。
func (ed *Editor) Move(employeeID, supervisorID int64) error {
	m, err := ed.prepare(employeeID, supervisorID)
	if err != nil {
		return err
	}
	if err := ed.apply(m); err != nil {
		return err
	}
	ed.undoStack = append(ed.undoStack, m)
	ed.redoStack = nil
	return nil
}

// Undo 撤销最近一次移动，并把该记录压入 redo 栈。
// 没有可撤销的移动时返回 ErrEmptyHistory，状态不变。
func (ed *Editor) Undo() error {
	if len(ed.undoStack) == 0 {
		return ErrEmptyHistory
	}
	last := len(ed.undoStack) - 1
	m := ed.undoStack[last]
	if err := ed.revert(m); err != nil {
		return err
	}
	ed.undoStack = ed.undoStack[:last]
	ed.redoStack = append(ed.redoStack, m)
	return nil
}

// Redo 重新执行最近一次被撤销的移动。
// 没有可重做的移动时返回 ErrEmptyHistory，状态不变。
func (ed *Editor) Redo() error {
	if len(ed.redoStack) == 0 {
		return ErrEmptyHistory
	}
	last := len(ed.redoStack) - 1
	m := ed.redoStack[last]
	if err := ed.check(m); err != nil {
		return err
	}
	if err := ed.apply(m); err != nil {
		return err
	}
	ed.redoStack = ed.redoStack[:last]
	ed.undoStack = append(ed.undoStack, m)
	return nil
}

// CanUndo 是否还有可撤销的移动
func (ed *Editor) CanUndo() bool { return len(ed.undoStack) > 0 }

// CanRedo 是否还有可重做的移动
func (ed *Editor) CanRedo() bool { return len(ed.redoStack) > 0 }

// History 返回两个栈的拷贝，栈顶在切片末尾。
func (ed *Editor) History() (undo, redo []Move) {
	undo = make([]Move, 0, len(ed.undoStack))
	for _, m := range ed.undoStack {
		undo = append(undo, m.clone())
	}
	redo = make([]Move, 0, len(ed.redoStack))
	for _, m := range ed.redoStack {
		redo = append(redo, m.clone())
	}
	return undo, redo
}

// prepare 基于当前树生成移动记录并完成校验。
func (ed *Editor) prepare(employeeID, supervisorID int64) (Move, error) {
	m := Move{
		EmployeeID:      employeeID,
		NewSupervisorID: supervisorID,
		OldIndex:        -1,
	}
	if employee := ed.Find(employeeID); employee != nil {
		m.SubordinateIDs = make([]int64, 0, len(employee.Subordinates))
		for _, sub := range employee.Subordinates {
			m.SubordinateIDs = append(m.SubordinateIDs, sub.UniqueID)
		}
	}
	if old := ed.FindSupervisor(employeeID); old != nil {
		m.OldSupervisorID = old.UniqueID
		m.HasOldSupervisor = true
		m.OldIndex = indexOf(old.Subordinates, employeeID)
	}
	if err := ed.check(m); err != nil {
		return Move{}, err
	}
	return m, nil
}

// check 按顺序校验：员工存在、目标上级存在、不成环、不是原地移动。
func (ed *Editor) check(m Move) error {
	employee := ed.Find(m.EmployeeID)
	if employee == nil {
		return fmt.Errorf("employee %d: %w", m.EmployeeID, ErrEmployeeNotFound)
	}
	supervisor := ed.Find(m.NewSupervisorID)
	if supervisor == nil {
		return fmt.Errorf("supervisor %d: %w", m.NewSupervisorID, ErrEmployeeNotFound)
	}
	// 目标上级落在员工自己的子树里（含本人）会成环。根节点的子树就是整棵树，所以根节点永远无法被移动。
	if IsDescendantOrSelf(employee, supervisor) {
		return fmt.Errorf("employee %d under %d: %w", m.EmployeeID, m.NewSupervisorID, ErrCycleDetected)
	}
	if m.HasOldSupervisor && m.OldSupervisorID == supervisor.UniqueID {
		return fmt.Errorf("employee %d under %d: %w", m.EmployeeID, m.NewSupervisorID, ErrNoOpMove)
	}
	return nil
}

// apply 执行一条已经通过校验的移动记录。节点都按 id 从当前树重新解析。
func (ed *Editor) apply(m Move) error {
	employee := ed.Find(m.EmployeeID)
	supervisor := ed.Find(m.NewSupervisorID)
	if employee == nil || supervisor == nil {
		return fmt.Errorf("apply move of %d: %w", m.EmployeeID, ErrEmployeeNotFound)
	}

	if m.HasOldSupervisor {
		if old := ed.Find(m.OldSupervisorID); old != nil {
			// 员工离开原上级，员工的下属按原顺序追加到原上级名下。
			// 员工自己的下属列表保持不变，undo 时按 SubordinateIDs 还原。
			old.Subordinates = removeByID(old.Subordinates, m.EmployeeID)
			old.Subordinates = append(old.Subordinates, employee.Subordinates...)
		}
	}

	supervisor.Subordinates = append(supervisor.Subordinates, employee)
	return nil
}

// revert 是 apply 的逆操作，假设两者之间受影响的节点没有被其他操作改动过。
func (ed *Editor) revert(m Move) error {
	employee := ed.Find(m.EmployeeID)
	if employee == nil || !m.HasOldSupervisor {
		return fmt.Errorf("undo move of %d: %w", m.EmployeeID, ErrEmployeeNotFound)
	}
	old := ed.Find(m.OldSupervisorID)
	if old == nil {
		return fmt.Errorf("undo move of %d, old supervisor %d: %w", m.EmployeeID, m.OldSupervisorID, ErrEmployeeNotFound)
	}

	if supervisor := ed.Find(m.NewSupervisorID); supervisor != nil {
		supervisor.Subordinates = removeByID(supervisor.Subordinates, m.EmployeeID)
	}

	// 收回 apply 时挂到原上级下的那批下属
	restored := make([]*model.Employee, 0, len(m.SubordinateIDs))
	for _, id := range m.SubordinateIDs {
		if i := indexOf(old.Subordinates, id); i >= 0 {
			restored = append(restored, old.Subordinates[i])
		}
	}
	old.Subordinates = removeByID(old.Subordinates, m.SubordinateIDs...)
	old.Subordinates = insertAt(old.Subordinates, m.OldIndex, employee)
	employee.Subordinates = restored
	return nil
}
