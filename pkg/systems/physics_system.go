package systems

import (
	"github.com/decker502/survival/pkg/components"
	"github.com/decker502/survival/pkg/ecs"
)

// Contact 一次相交及其处理动作，按枚举顺序记录
type Contact struct {
	A      *ecs.Entity
	B      *ecs.Entity
	Action components.Action
}

// EffectListener 双方销毁时收到通知（示例游戏用来播放爆炸音效）
type EffectListener interface {
	OnDestroyBoth(a, b *ecs.Entity)
}

// EffectListenerFunc 允许普通函数作为 EffectListener 使用
type EffectListenerFunc func(a, b *ecs.Entity)

// OnDestroyBoth 调用 f(a, b)
func (f EffectListenerFunc) OnDestroyBoth(a, b *ecs.Entity) { f(a, b) }

// PhysicsSystem 处理游戏物理逻辑
// 负责碰撞检测，并按碰撞结果表对相交的实体执行动作
//
// 对所有实体两两检测，复杂度 O(n²)。实体数量在几百以内时足够，
// 更大规模需要空间划分。
type PhysicsSystem struct {
	em       *ecs.EntityManager
	table    *components.OutcomeTable
	listener EffectListener
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器，提供有序的实体序列
//   - table: 碰撞结果表，为 nil 时使用默认规则
//   - listener: 双方销毁时的通知对象，可以为 nil
//
// 返回:
//   - *PhysicsSystem: 物理系统实例
func NewPhysicsSystem(em *ecs.EntityManager, table *components.OutcomeTable, listener EffectListener) *PhysicsSystem {
	if table == nil {
		table = components.DefaultOutcomeTable()
	}
	return &PhysicsSystem{
		em:       em,
		table:    table,
		listener: listener,
	}
}

// SetTable 替换碰撞结果表（配置热加载时使用）
func (ps *PhysicsSystem) SetTable(table *components.OutcomeTable) {
	if table != nil {
		ps.table = table
	}
}

// Table 返回当前使用的碰撞结果表
func (ps *PhysicsSystem) Table() *components.OutcomeTable {
	return ps.table
}

// checkAABBCollision 检查两个实体的AABB（轴对齐边界框）是否发生碰撞
// 边缘恰好接触也算碰撞
func checkAABBCollision(a, b *ecs.Entity) bool {
	return a.BoundingBox().Intersects(b.BoundingBox())
}

// Update 执行一次碰撞检测
//
// 对有序序列中每一对 i < j 且双方都可碰撞的实体检测相交，
// 相交时查表并执行动作。返回按枚举顺序排列的相交记录。
// 本方法只做标记，不移除实体；移除由 EntityManager.RemoveMarkedEntities 完成。
func (ps *PhysicsSystem) Update() []Contact {
	var contacts []Contact
	entities := ps.em.Entities()

	for i := 0; i < len(entities); i++ {
		a := entities[i]
		if !a.Collidable() {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			b := entities[j]
			if !b.Collidable() {
				continue
			}
			if !checkAABBCollision(a, b) {
				continue
			}

			action := ps.table.Lookup(a.Kind(), b.Kind())
			ps.apply(action, a, b)
			contacts = append(contacts, Contact{A: a, B: b, Action: action})
		}
	}
	return contacts
}

// apply 对一对相交实体执行动作
func (ps *PhysicsSystem) apply(action components.Action, a, b *ecs.Entity) {
	switch action {
	case components.ActionDestroyProjectile:
		for _, e := range [2]*ecs.Entity{a, b} {
			if e.Kind() == components.KindBullet {
				e.SetMarkedForDestruction(true)
			}
		}
	case components.ActionRevertMover:
		for _, e := range [2]*ecs.Entity{a, b} {
			if e.Kind() == components.KindPlayer {
				e.RevertPosition()
			}
		}
	case components.ActionDestroyBoth:
		a.SetMarkedForDestruction(true)
		b.SetMarkedForDestruction(true)
		if ps.listener != nil {
			ps.listener.OnDestroyBoth(a, b)
		}
	}
}
