package orgtree

import (
	"errors"
	"testing"

	"org_chart_go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 参考树中的 id，见 DemoTree
const (
	willTurner        int64 = 1
	bobSaget          int64 = 3
	maryBlue          int64 = 4
	cassandraReynolds int64 = 5
	margotDonald      int64 = 6
	harryTobs         int64 = 8
	georgeCarrey      int64 = 9
	garyStyles        int64 = 10
	tylerSimpson      int64 = 11
	benWillis         int64 = 12
	georgineFlangy    int64 = 14
	ceoID             int64 = 15
)

func newDemoEditor(t *testing.T) *Editor {
	t.Helper()
	ed, err := New(DemoTree(NewIDGenerator()))
	require.NoError(t, err)
	return ed
}

// shape 记录每个节点的有序下属 id，两棵树 shape 相同即父子关系和顺序完全一致。
func shape(root *model.Employee) map[int64][]int64 {
	out := make(map[int64][]int64)
	walk(root, func(e *model.Employee) bool {
		out[e.UniqueID] = ids(e.Subordinates)
		return true
	})
	return out
}

func TestNew_RejectsInvalidTree(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidTree)

	dup := &model.Employee{UniqueID: 1, Subordinates: []*model.Employee{{UniqueID: 2}, {UniqueID: 1}}}
	_, err = New(dup)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestEditor_Move_CassandraUnderTyler(t *testing.T) {
	ed := newDemoEditor(t)

	require.NoError(t, ed.Move(cassandraReynolds, tylerSimpson))

	tyler := ed.Find(tylerSimpson)
	assert.Equal(t, []int64{garyStyles, georgeCarrey, harryTobs, cassandraReynolds}, ids(tyler.Subordinates))
	// Cassandra 保留自己的下属列表，同时这些下属也挂到 Margot 名下
	assert.Equal(t, []int64{maryBlue, bobSaget}, ids(ed.Find(cassandraReynolds).Subordinates))
	assert.Equal(t, []int64{maryBlue, bobSaget}, ids(ed.Find(margotDonald).Subordinates))
	assert.Equal(t, tylerSimpson, ed.FindSupervisor(cassandraReynolds).UniqueID)
	// 更深的汇报线不受影响
	assert.Equal(t, bobSaget, ed.FindSupervisor(2).UniqueID)

	require.NoError(t, ed.Undo())

	assert.Equal(t, []int64{garyStyles, georgeCarrey, harryTobs}, ids(ed.Find(tylerSimpson).Subordinates))
	assert.Equal(t, []int64{cassandraReynolds}, ids(ed.Find(margotDonald).Subordinates))
	assert.Equal(t, []int64{maryBlue, bobSaget}, ids(ed.Find(cassandraReynolds).Subordinates))
	assert.Equal(t, margotDonald, ed.FindSupervisor(cassandraReynolds).UniqueID)
}

func TestEditor_Move_ReferenceScenario(t *testing.T) {
	ed := newDemoEditor(t)
	before := shape(ed.CEO())

	require.NoError(t, ed.Move(tylerSimpson, georgineFlangy))

	ceo := ed.CEO()
	assert.Equal(t, []int64{margotDonald, georgineFlangy, benWillis, garyStyles, georgeCarrey, harryTobs}, ids(ceo.Subordinates))
	assert.Equal(t, []int64{13, tylerSimpson}, ids(ed.Find(georgineFlangy).Subordinates))

	require.NoError(t, ed.Undo())
	assert.Equal(t, before, shape(ed.CEO()))
}

// TestEditor_RoundTrip_AllPairs 验证参考树上所有 (员工, 上级) 组合:
// 1. 被拒绝的移动不改变树，也不进入 undo 栈
// 2. 成功的移动 undo 后与原树完全一致，包括下属顺序
// 3. redo 后与首次移动后的树完全一致
func TestEditor_RoundTrip_AllPairs(t *testing.T) {
	for employee := int64(1); employee <= ceoID; employee++ {
		for supervisor := int64(1); supervisor <= ceoID+1; supervisor++ {
			ed := newDemoEditor(t)
			before := shape(ed.CEO())

			if err := ed.Move(employee, supervisor); err != nil {
				assert.Equal(t, before, shape(ed.CEO()), "rejected move %d->%d changed the tree", employee, supervisor)
				assert.False(t, ed.CanUndo())
				continue
			}
			after := shape(ed.CEO())
			assert.NotEqual(t, before, after)

			require.NoError(t, ed.Undo())
			assert.Equal(t, before, shape(ed.CEO()), "undo of %d->%d", employee, supervisor)

			require.NoError(t, ed.Redo())
			assert.Equal(t, after, shape(ed.CEO()), "redo of %d->%d", employee, supervisor)
		}
	}
}

func TestEditor_Move_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		employee   int64
		supervisor int64
		wantErr    error
	}{
		{name: "unknown employee", employee: 99, supervisor: tylerSimpson, wantErr: ErrEmployeeNotFound},
		{name: "unknown supervisor", employee: tylerSimpson, supervisor: 99, wantErr: ErrEmployeeNotFound},
		{name: "self move", employee: tylerSimpson, supervisor: tylerSimpson, wantErr: ErrCycleDetected},
		{name: "under own descendant", employee: margotDonald, supervisor: willTurner, wantErr: ErrCycleDetected},
		{name: "under direct report", employee: cassandraReynolds, supervisor: maryBlue, wantErr: ErrCycleDetected},
		{name: "root", employee: ceoID, supervisor: benWillis, wantErr: ErrCycleDetected},
		{name: "current supervisor", employee: cassandraReynolds, supervisor: margotDonald, wantErr: ErrNoOpMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newDemoEditor(t)
			before := shape(ed.CEO())

			require.ErrorIs(t, ed.Validate(tt.employee, tt.supervisor), tt.wantErr)
			require.ErrorIs(t, ed.Move(tt.employee, tt.supervisor), tt.wantErr)

			assert.Equal(t, before, shape(ed.CEO()))
			undo, redo := ed.History()
			assert.Empty(t, undo)
			assert.Empty(t, redo)
		})
	}
}

func TestEditor_Validate_DoesNotMutate(t *testing.T) {
	ed := newDemoEditor(t)
	before := shape(ed.CEO())

	require.NoError(t, ed.Validate(cassandraReynolds, tylerSimpson))
	assert.Equal(t, before, shape(ed.CEO()))
	assert.False(t, ed.CanUndo())
}

func TestEditor_EmptyHistory(t *testing.T) {
	ed := newDemoEditor(t)
	before := shape(ed.CEO())

	assert.True(t, errors.Is(ed.Undo(), ErrEmptyHistory))
	assert.True(t, errors.Is(ed.Redo(), ErrEmptyHistory))
	assert.Equal(t, before, shape(ed.CEO()))
}

// TestEditor_NewMoveClearsRedo 验证 undo 之后的新移动会丢弃 redo 栈，redo 不再可用。
func TestEditor_NewMoveClearsRedo(t *testing.T) {
	ed := newDemoEditor(t)

	require.NoError(t, ed.Move(cassandraReynolds, tylerSimpson))
	require.NoError(t, ed.Undo())
	require.True(t, ed.CanRedo())

	require.NoError(t, ed.Move(benWillis, georgineFlangy))
	assert.False(t, ed.CanRedo())
	assert.ErrorIs(t, ed.Redo(), ErrEmptyHistory)

	undo, _ := ed.History()
	require.Len(t, undo, 1)
	assert.Equal(t, benWillis, undo[0].EmployeeID)
}

// TestEditor_UndoIsLIFO 验证连续三次移动:
// 1. undo 按后进先出逐步回退，每一步都回到对应的中间状态
// 2. 栈空后 undo 返回 ErrEmptyHistory
// 3. 全部 redo 后回到最后的状态
func TestEditor_UndoIsLIFO(t *testing.T) {
	ed := newDemoEditor(t)
	before := shape(ed.CEO())

	require.NoError(t, ed.Move(cassandraReynolds, tylerSimpson))
	afterFirst := shape(ed.CEO())
	require.NoError(t, ed.Move(benWillis, georgineFlangy))
	afterSecond := shape(ed.CEO())
	require.NoError(t, ed.Move(margotDonald, harryTobs))
	afterThird := shape(ed.CEO())

	require.NoError(t, ed.Undo())
	assert.Equal(t, afterSecond, shape(ed.CEO()))
	require.NoError(t, ed.Undo())
	assert.Equal(t, afterFirst, shape(ed.CEO()))
	require.NoError(t, ed.Undo())
	assert.Equal(t, before, shape(ed.CEO()))
	assert.ErrorIs(t, ed.Undo(), ErrEmptyHistory)

	require.NoError(t, ed.Redo())
	require.NoError(t, ed.Redo())
	require.NoError(t, ed.Redo())
	assert.Equal(t, afterThird, shape(ed.CEO()))
	assert.Equal(t, harryTobs, ed.FindSupervisor(margotDonald).UniqueID)
	assert.Equal(t, georgineFlangy, ed.FindSupervisor(benWillis).UniqueID)
}

func TestEditor_Move_PromotesSubordinates(t *testing.T) {
	ed := newDemoEditor(t)

	require.NoError(t, ed.Move(margotDonald, benWillis))

	ceo := ed.CEO()
	assert.Equal(t, []int64{georgineFlangy, benWillis, tylerSimpson, cassandraReynolds}, ids(ceo.Subordinates))
	assert.Equal(t, []int64{margotDonald}, ids(ed.Find(benWillis).Subordinates))
	assert.Equal(t, []int64{cassandraReynolds}, ids(ed.Find(margotDonald).Subordinates))

	undo, _ := ed.History()
	require.Len(t, undo, 1)
	assert.Equal(t, []int64{cassandraReynolds}, undo[0].SubordinateIDs)
	assert.Equal(t, ceoID, undo[0].OldSupervisorID)
	assert.Equal(t, 0, undo[0].OldIndex)
}

// TestEditor_Move_SubjectKeepsSubordinates 验证移动后员工的下属:
// 1. 按原顺序追加到原上级名下
// 2. 仍然留在员工自己的下属列表中，两边是同一批节点
// 3. undo 只恢复一份，redo 得到相同的结构
func TestEditor_Move_SubjectKeepsSubordinates(t *testing.T) {
	ed := newDemoEditor(t)
	before := shape(ed.CEO())

	require.NoError(t, ed.Move(cassandraReynolds, tylerSimpson))
	after := shape(ed.CEO())

	margot := ed.Find(margotDonald)
	cassandra := ed.Find(cassandraReynolds)
	require.Equal(t, []int64{maryBlue, bobSaget}, ids(margot.Subordinates))
	require.Equal(t, []int64{maryBlue, bobSaget}, ids(cassandra.Subordinates))
	assert.Same(t, margot.Subordinates[0], cassandra.Subordinates[0])
	assert.Same(t, margot.Subordinates[1], cassandra.Subordinates[1])

	require.NoError(t, ed.Undo())
	assert.Equal(t, before, shape(ed.CEO()))
	assert.Equal(t, []int64{cassandraReynolds}, ids(ed.Find(margotDonald).Subordinates))

	require.NoError(t, ed.Redo())
	assert.Equal(t, after, shape(ed.CEO()))
	assert.Equal(t, []int64{maryBlue, bobSaget}, ids(ed.Find(cassandraReynolds).Subordinates))
}

func TestEditor_History_ReturnsCopies(t *testing.T) {
	ed := newDemoEditor(t)
	require.NoError(t, ed.Move(cassandraReynolds, tylerSimpson))

	undo, _ := ed.History()
	undo[0].SubordinateIDs[0] = 999

	again, _ := ed.History()
	assert.Equal(t, []int64{maryBlue, bobSaget}, again[0].SubordinateIDs)
}
