package ecs

// EntityManager 按插入顺序保存所有实体
//
// 只能由运行游戏循环的 goroutine 访问。
type EntityManager struct {
	nextID   uint64
	entities []*Entity
	index    map[EntityID]*Entity
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1, // ID从1开始,0保留为无效ID
		index:  make(map[EntityID]*Entity),
	}
}

// CreateEntity 创建空实体，追加到末尾并返回
func (em *EntityManager) CreateEntity() *Entity {
	e := &Entity{}
	em.Add(e)
	return e
}

// Add 分配 ID 并把实体追加到末尾
// 在 tick 中途加入的实体会参与同一 tick 的碰撞检测
func (em *EntityManager) Add(e *Entity) EntityID {
	e.ID = EntityID(em.nextID)
	em.nextID++
	em.entities = append(em.entities, e)
	em.index[e.ID] = e
	return e.ID
}

// Get 按 ID 查找存活的实体
func (em *EntityManager) Get(id EntityID) (*Entity, bool) {
	e, ok := em.index[id]
	return e, ok
}

// Entities 返回按插入顺序排列的实体
// 返回的切片在下一次 Add 或 RemoveMarkedEntities 之前有效，调用方不得修改
func (em *EntityManager) Entities() []*Entity {
	return em.entities
}

// Len 返回实体数量
func (em *EntityManager) Len() int {
	return len(em.entities)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	if e, ok := em.index[id]; ok {
		e.SetMarkedForDestruction(true)
	}
}

// RemoveMarkedEntities 清理所有标记删除的实体
//
// 单次扫描并原地压缩：保留的实体维持相对顺序，每个实体只访问一次。
// 被移除的实体按原顺序返回，并逐个传给 onRemove（可以为 nil）。
func (em *EntityManager) RemoveMarkedEntities(onRemove func(*Entity)) []*Entity {
	var removed []*Entity
	kept := em.entities[:0]
	for _, e := range em.entities {
		if !e.MarkedForDestruction() {
			kept = append(kept, e)
			continue
		}
		delete(em.index, e.ID)
		removed = append(removed, e)
		if onRemove != nil {
			onRemove(e)
		}
	}
	// 释放尾部引用
	for i := len(kept); i < len(em.entities); i++ {
		em.entities[i] = nil
	}
	em.entities = kept
	return removed
}

// Clear 移除全部实体
func (em *EntityManager) Clear() {
	em.entities = nil
	em.index = make(map[EntityID]*Entity)
}
