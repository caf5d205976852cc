package ecs

import (
	"testing"

	"github.com/decker502/survival/pkg/components"
)

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	e1 := em.CreateEntity()
	e2 := em.CreateEntity()

	// 测试实体ID唯一性
	if e1.ID == e2.ID {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if e1.ID != 1 {
		t.Errorf("First entity ID should be 1, got %d", e1.ID)
	}

	if e2.ID != 2 {
		t.Errorf("Second entity ID should be 2, got %d", e2.ID)
	}

	if got, ok := em.Get(e2.ID); !ok || got != e2 {
		t.Error("Get should return the created entity")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	e := em.CreateEntity()

	// 标记删除
	em.DestroyEntity(e.ID)

	// 删除前实体应该仍然存在
	if _, ok := em.Get(e.ID); !ok {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities(nil)

	if _, ok := em.Get(e.ID); ok {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if em.Len() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.Len())
	}
}

// TestRemoveMarkedEntitiesKeepsOrder 标记下标 {1,3,4} 后剩余实体保持原顺序
func TestRemoveMarkedEntitiesKeepsOrder(t *testing.T) {
	em := NewEntityManager()
	var all []*Entity
	for i := 0; i < 6; i++ {
		all = append(all, em.CreateEntity())
	}
	for _, i := range []int{1, 3, 4} {
		all[i].SetMarkedForDestruction(true)
	}

	visits := make(map[EntityID]int)
	removed := em.RemoveMarkedEntities(func(e *Entity) {
		visits[e.ID]++
	})

	wantKept := []*Entity{all[0], all[2], all[5]}
	got := em.Entities()
	if len(got) != len(wantKept) {
		t.Fatalf("Expected %d entities, got %d", len(wantKept), len(got))
	}
	for i := range wantKept {
		if got[i] != wantKept[i] {
			t.Errorf("kept[%d] = %d, want %d", i, got[i].ID, wantKept[i].ID)
		}
	}

	wantRemoved := []*Entity{all[1], all[3], all[4]}
	if len(removed) != len(wantRemoved) {
		t.Fatalf("Expected %d removed, got %d", len(wantRemoved), len(removed))
	}
	for i := range wantRemoved {
		if removed[i] != wantRemoved[i] {
			t.Errorf("removed[%d] = %d, want %d", i, removed[i].ID, wantRemoved[i].ID)
		}
		if visits[wantRemoved[i].ID] != 1 {
			t.Errorf("entity %d reported %d times", wantRemoved[i].ID, visits[wantRemoved[i].ID])
		}
	}
}

func TestRemoveMarkedEntitiesNothingMarked(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 3; i++ {
		em.CreateEntity()
	}
	if removed := em.RemoveMarkedEntities(nil); len(removed) != 0 {
		t.Errorf("Expected no removals, got %d", len(removed))
	}
	if em.Len() != 3 {
		t.Errorf("Expected 3 entities, got %d", em.Len())
	}
}

func TestRefClearedAfterRemoval(t *testing.T) {
	em := NewEntityManager()
	player := NewEntity(10, 10, components.KindPlayer)
	em.Add(player)
	ref := RefTo(player)

	if e, ok := ref.Resolve(em); !ok || e != player {
		t.Fatal("Ref should resolve to the player")
	}

	player.SetMarkedForDestruction(true)
	em.RemoveMarkedEntities(func(e *Entity) {
		if ref.Is(e) {
			ref.Clear()
		}
	})

	if ref.Valid() {
		t.Error("Ref should be cleared")
	}
	if _, ok := ref.Resolve(em); ok {
		t.Error("cleared Ref should not resolve")
	}

	// 未清空的引用同样无法解析到已移除的实体
	stale := Ref{id: player.ID}
	if _, ok := stale.Resolve(em); ok {
		t.Error("Ref to removed entity should not resolve")
	}
}

func TestEntityAddedDuringIterationIsVisible(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	em.Add(NewEntity(0, 0, components.KindBullet))
	if em.Len() != 2 {
		t.Fatalf("Expected 2 entities, got %d", em.Len())
	}
	if em.Entities()[1].Kind() != components.KindBullet {
		t.Error("appended entity should be last")
	}
}
