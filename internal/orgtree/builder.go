package orgtree

import "org_chart_go/internal/model"

// IDGenerator 按创建顺序分配从 1 开始的递增 id。
// 每棵树的构造过程持有自己的生成器，不依赖进程级全局计数器。
type IDGenerator struct {
	last int64
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

func (g *IDGenerator) Next() int64 {
	g.last++
	return g.last
}

// NewEmployee 创建节点并在创建时分配 id。下属需要先创建，因此它们的 id 更小。
func NewEmployee(gen *IDGenerator, name string, subordinates ...*model.Employee) *model.Employee {
	if subordinates == nil {
		subordinates = []*model.Employee{}
	}
	return &model.Employee{
		UniqueID:     gen.Next(),
		Name:         name,
		Subordinates: subordinates,
	}
}

// DemoTree 构造参考组织树，自底向上创建，id 分配顺序如下：
//
//	Abhishek Sharma(15)
//	├── Margot Donald(6) → Cassandra Reynolds(5) → {Mary Blue(4), Bob Saget(3) → Tina Teff(2) → Will Turner(1)}
//	├── Georgine Flangy(14) → Sophie Turner(13)
//	├── Ben Willis(12)
//	└── Tyler Simpson(11) → {Gary Styles(10), George Carrey(9), Harry Tobs(8) → Thomas Brown(7)}
func DemoTree(gen *IDGenerator) *model.Employee {
	willTurner := NewEmployee(gen, "Will Turner")
	tinaTeff := NewEmployee(gen, "Tina Teff", willTurner)
	bobSaget := NewEmployee(gen, "Bob Saget", tinaTeff)
	maryBlue := NewEmployee(gen, "Mary Blue")
	cassandraReynolds := NewEmployee(gen, "Cassandra Reynolds", maryBlue, bobSaget)
	margotDonald := NewEmployee(gen, "Margot Donald", cassandraReynolds)

	thomasBrown := NewEmployee(gen, "Thomas Brown")
	harryTobs := NewEmployee(gen, "Harry Tobs", thomasBrown)
	georgeCarrey := NewEmployee(gen, "George Carrey")
	garyStyles := NewEmployee(gen, "Gary Styles")
	tylerSimpson := NewEmployee(gen, "Tyler Simpson", garyStyles, georgeCarrey, harryTobs)

	benWillis := NewEmployee(gen, "Ben Willis")
	sophieTurner := NewEmployee(gen, "Sophie Turner")
	georgineFlangy := NewEmployee(gen, "Georgine Flangy", sophieTurner)

	return NewEmployee(gen, "Abhishek Sharma", margotDonald, georgineFlangy, benWillis, tylerSimpson)
}
