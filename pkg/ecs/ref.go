package ecs

// Ref 对实体的弱引用
// 只保存 ID，每次使用时通过 EntityManager 重新解析；实体被移除后解析失败
type Ref struct {
	id EntityID
}

// RefTo 创建指向 e 的引用
func RefTo(e *Entity) Ref {
	if e == nil {
		return Ref{}
	}
	return Ref{id: e.ID}
}

// ID 返回引用的实体 ID
func (r Ref) ID() EntityID { return r.id }

// Valid 引用是否指向某个实体（不检查实体是否仍存活）
func (r Ref) Valid() bool { return r.id != InvalidEntity }

// Resolve 查找引用的实体，已清空或实体已被移除时返回 false
func (r Ref) Resolve(em *EntityManager) (*Entity, bool) {
	if r.id == InvalidEntity {
		return nil, false
	}
	return em.Get(r.id)
}

// Is 引用是否指向 e
func (r Ref) Is(e *Entity) bool {
	return e != nil && r.id != InvalidEntity && r.id == e.ID
}

// Clear 清空引用
func (r *Ref) Clear() { r.id = InvalidEntity }
