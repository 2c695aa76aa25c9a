package orgtree

import "org_chart_go/internal/model"

// Find 深度优先前序查找 id 对应的节点，找不到返回 nil。
func Find(root *model.Employee, id int64) *model.Employee {
	if root == nil {
		return nil
	}
	if root.UniqueID == id {
		return root
	}
	for _, sub := range root.Subordinates {
		if found := Find(sub, id); found != nil {
			return found
		}
	}
	return nil
}

// FindSupervisor 返回 id 对应节点的直接上级。
// id 是根节点或不存在时返回 nil。
func FindSupervisor(root *model.Employee, id int64) *model.Employee {
	if root == nil {
		return nil
	}
	for _, sub := range root.Subordinates {
		if sub.UniqueID == id {
			return root
		}
		if supervisor := FindSupervisor(sub, id); supervisor != nil {
			return supervisor
		}
	}
	return nil
}

// IsDescendantOrSelf 判断 node 是否能从 ancestor 沿下属链接到达（包括 ancestor 本身）。
func IsDescendantOrSelf(ancestor, node *model.Employee) bool {
	if ancestor == nil || node == nil {
		return false
	}
	if ancestor.UniqueID == node.UniqueID {
		return true
	}
	for _, sub := range ancestor.Subordinates {
		if IsDescendantOrSelf(sub, node) {
			return true
		}
	}
	return false
}

// indexOf 返回 id 在 list 中的位置，不存在返回 -1。
func indexOf(list []*model.Employee, id int64) int {
	for i, e := range list {
		if e.UniqueID == id {
			return i
		}
	}
	return -1
}

// removeByID 按 id 过滤，保持其余元素的相对顺序。返回新切片。
func removeByID(list []*model.Employee, ids ...int64) []*model.Employee {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]*model.Employee, 0, len(list))
	for _, e := range list {
		if _, ok := drop[e.UniqueID]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// insertAt 把 e 插入到 list 的 index 位置；index 越界时追加到末尾。
func insertAt(list []*model.Employee, index int, e *model.Employee) []*model.Employee {
	if index < 0 || index >= len(list) {
		return append(list, e)
	}
	out := make([]*model.Employee, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, e)
	return append(out, list[index:]...)
}

// walk 前序遍历整棵树，fn 返回 false 时提前结束。
func walk(root *model.Employee, fn func(*model.Employee) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, sub := range root.Subordinates {
		if !walk(sub, fn) {
			return false
		}
	}
	return true
}
