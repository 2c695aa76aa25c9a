package service

import (
	"errors"
	"fmt"
	"org_chart_go/internal/model"
	"org_chart_go/internal/orgtree"
	"org_chart_go/internal/repository"
	"org_chart_go/pkg/log"
	"sync"
)

// OrgService 封装组织树的读写操作。
// 设计目标：
// 1. orgtree.Editor 本身不加锁，这里用一把互斥锁串行化所有调用。
// 2. 读操作返回深拷贝，JSON 编码时不会与后续调岗产生数据竞争。
// 3. undo/redo 栈为空属于正常情况，以 changed=false 表达，而不是错误。
type OrgService interface {
	GetTree() (*model.Employee, error)
	FindEmployee(employeeID int64) (*model.Employee, error)
	Validate(employeeID, supervisorID int64) error
	Move(employeeID, supervisorID int64) error
	Undo() (changed bool, err error)
	Redo() (changed bool, err error)
	History() (*History, error)
}

// History 是两个历史栈的快照，栈顶在切片末尾。
type History struct {
	Undo []orgtree.Move `json:"undo"`
	Redo []orgtree.Move `json:"redo"`
}

type orgService struct {
	mu     sync.Mutex
	editor *orgtree.Editor
}

func NewOrgService(editor *orgtree.Editor) OrgService {
	return &orgService{editor: editor}
}

// NewOrgServiceFromRepository 从 employees 表读取平铺数据并构建初始组织树。
func NewOrgServiceFromRepository(repo repository.EmployeeRepository) (OrgService, error) {
	if repo == nil {
		return nil, ErrInternal
	}
	records, err := repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	root, err := LoadTree(records)
	if err != nil {
		return nil, err
	}
	editor, err := orgtree.New(root)
	if err != nil {
		return nil, err
	}
	log.Infow("Organization tree loaded", "employees", len(records), "ceo", root.UniqueID)
	return NewOrgService(editor), nil
}

// LoadTree 把平铺记录构建成组织树。
// 实现采用两遍扫描：
// 1. 第一遍创建所有节点并放入 map（id -> node），同时检查重复 id
// 2. 第二遍按 SupervisorID 把下属按记录顺序挂到上级上
// 要求恰好一条记录没有上级（CEO），上级 id 必须存在。
func LoadTree(records []model.EmployeeRecord) (*model.Employee, error) {
	nodes := make(map[int64]*model.Employee, len(records))
	for _, r := range records {
		if _, ok := nodes[r.ID]; ok {
			return nil, fmt.Errorf("duplicate employee id %d: %w", r.ID, ErrInvalidTree)
		}
		nodes[r.ID] = &model.Employee{
			UniqueID:     r.ID,
			Name:         r.Name,
			Subordinates: []*model.Employee{},
		}
	}

	var root *model.Employee
	for _, r := range records {
		node := nodes[r.ID]
		if r.SupervisorID == nil {
			if root != nil {
				return nil, fmt.Errorf("multiple roots %d and %d: %w", root.UniqueID, r.ID, ErrInvalidTree)
			}
			root = node
			continue
		}
		parent, ok := nodes[*r.SupervisorID]
		if !ok {
			return nil, fmt.Errorf("employee %d reports to unknown supervisor %d: %w", r.ID, *r.SupervisorID, ErrInvalidTree)
		}
		parent.Subordinates = append(parent.Subordinates, node)
	}
	if root == nil {
		return nil, fmt.Errorf("no root employee: %w", ErrInvalidTree)
	}

	// 记录之间的环不会挂到根节点上，数量对不上说明存在不可达的节点
	reachable := 0
	var count func(*model.Employee)
	count = func(e *model.Employee) {
		reachable++
		for _, sub := range e.Subordinates {
			count(sub)
		}
	}
	count(root)
	if reachable != len(records) {
		return nil, fmt.Errorf("%d of %d employees unreachable from root: %w", len(records)-reachable, len(records), ErrInvalidTree)
	}
	return root, nil
}

func (s *orgService) GetTree() (*model.Employee, error) {
	if s.editor == nil {
		return nil, ErrInternal
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.CEO().Clone(), nil
}

func (s *orgService) FindEmployee(employeeID int64) (*model.Employee, error) {
	if s.editor == nil {
		return nil, ErrInternal
	}
	if employeeID <= 0 {
		return nil, ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	employee := s.editor.Find(employeeID)
	if employee == nil {
		return nil, fmt.Errorf("employee %d: %w", employeeID, ErrEmployeeNotFound)
	}
	return employee.Clone(), nil
}

func (s *orgService) Validate(employeeID, supervisorID int64) error {
	if s.editor == nil {
		return ErrInternal
	}
	if employeeID <= 0 || supervisorID <= 0 {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Validate(employeeID, supervisorID)
}

// Move 执行调岗。被拒绝的调岗只记 warn 日志，不改变树和历史。
func (s *orgService) Move(employeeID, supervisorID int64) error {
	if s.editor == nil {
		return ErrInternal
	}
	if employeeID <= 0 || supervisorID <= 0 {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editor.Move(employeeID, supervisorID); err != nil {
		log.Warnw("Move rejected", "employee_id", employeeID, "supervisor_id", supervisorID, "reason", err.Error())
		return err
	}
	log.Infow("Move applied", "employee_id", employeeID, "supervisor_id", supervisorID)
	return nil
}

func (s *orgService) Undo() (bool, error) {
	return s.step("undo", func() error { return s.editor.Undo() })
}

func (s *orgService) Redo() (bool, error) {
	return s.step("redo", func() error { return s.editor.Redo() })
}

// step 统一处理 undo/redo：栈为空返回 changed=false，其余错误原样返回。
func (s *orgService) step(action string, fn func() error) (bool, error) {
	if s.editor == nil {
		return false, ErrInternal
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		if errors.Is(err, orgtree.ErrEmptyHistory) {
			log.Debugw("Nothing to "+action)
			return false, nil
		}
		log.Errorf("%s failed: %v", action, err)
		return false, err
	}
	log.Infow("History step applied", "action", action)
	return true, nil
}

func (s *orgService) History() (*History, error) {
	if s.editor == nil {
		return nil, ErrInternal
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	undo, redo := s.editor.History()
	return &History{Undo: undo, Redo: redo}, nil
}
