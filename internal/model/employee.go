package model

// Employee 是组织树中的一个节点。
// 每个节点只被其直接上级（根节点由 Editor）持有，UniqueID 在整棵树内唯一且创建后不再变化。
type Employee struct {
	UniqueID     int64       `json:"uniqueId"`
	Name         string      `json:"name"`
	Subordinates []*Employee `json:"subordinates"`
}

// EmployeeRecord 对应数据库中 employees 表，是初始组织树的平铺数据来源。
// SupervisorID 为空表示 CEO（根节点）；SortOrder 决定同一上级下的下属顺序。
type EmployeeRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	SupervisorID *int64 `gorm:"index" json:"supervisorId"`
	SortOrder    int    `gorm:"default:0" json:"sortOrder"`
}

// TableName 指定 GORM 使用的表名
func (EmployeeRecord) TableName() string {
	return "employees"
}

// Clone 深拷贝以 e 为根的子树，供只读场景（如 JSON 序列化）使用。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	out := &Employee{
		UniqueID:     e.UniqueID,
		Name:         e.Name,
		Subordinates: make([]*Employee, 0, len(e.Subordinates)),
	}
	for _, sub := range e.Subordinates {
		out.Subordinates = append(out.Subordinates, sub.Clone())
	}
	return out
}
