package components

import (
	"errors"
	"fmt"
)

// Kind 实体类别标签，碰撞结果表按类别查询
type Kind int

const (
	KindOther  Kind = iota // 其他可破坏物体（如陨石）
	KindWall               // 墙体障碍物
	KindBullet             // 子弹
	KindPlayer             // 玩家

	kindCount
)

var kindNames = [kindCount]string{"other", "wall", "bullet", "player"}

// String 返回类别名称
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind 解析类别名称
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindOther, fmt.Errorf("unknown entity kind %q", s)
}

// Kinds 返回全部类别，按枚举顺序
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Action 两个实体相交时执行的动作
type Action int

const (
	ActionIgnore            Action = iota // 不处理
	ActionDestroyProjectile               // 只销毁子弹
	ActionRevertMover                     // 玩家退回上一位置
	ActionDestroyBoth                     // 双方销毁并触发特效

	actionCount
)

var actionNames = [actionCount]string{"ignore", "destroy-projectile", "revert-mover", "destroy-both"}

// String 返回动作名称
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction 解析动作名称
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return ActionIgnore, fmt.Errorf("unknown collision action %q", s)
}

// ErrAsymmetricTable 结果表 (a,b) 与 (b,a) 的动作不一致
var ErrAsymmetricTable = errors.New("collision outcome table is not symmetric")

// OutcomeTable 碰撞结果表：(Kind, Kind) -> Action 的全函数，且对两个参数对称
type OutcomeTable struct {
	actions [kindCount][kindCount]Action
}

// DefaultOutcomeTable 返回默认规则
//
// 规则按优先级：
//  1. 墙 × 墙：忽略
//  2. 子弹 × 墙：只销毁子弹
//  3. 任一方为玩家：玩家退回
//  4. 其余组合：双方销毁并触发爆炸
func DefaultOutcomeTable() *OutcomeTable {
	t := &OutcomeTable{}
	for _, a := range Kinds() {
		for _, b := range Kinds() {
			t.actions[a][b] = defaultAction(a, b)
		}
	}
	return t
}

func defaultAction(a, b Kind) Action {
	switch {
	case a == KindWall && b == KindWall:
		return ActionIgnore
	case (a == KindBullet && b == KindWall) || (a == KindWall && b == KindBullet):
		return ActionDestroyProjectile
	case a == KindPlayer || b == KindPlayer:
		return ActionRevertMover
	default:
		return ActionDestroyBoth
	}
}

// Lookup 查询两个类别相交时的动作
func (t *OutcomeTable) Lookup(a, b Kind) Action {
	if a < 0 || a >= kindCount || b < 0 || b >= kindCount {
		return ActionIgnore
	}
	return t.actions[a][b]
}

// Set 同时写入 (a,b) 和 (b,a)，保持对称
func (t *OutcomeTable) Set(a, b Kind, action Action) error {
	if a < 0 || a >= kindCount || b < 0 || b >= kindCount {
		return fmt.Errorf("set outcome %v x %v: kind out of range", a, b)
	}
	if action < 0 || action >= actionCount {
		return fmt.Errorf("set outcome %v x %v: invalid action %v", a, b, action)
	}
	t.actions[a][b] = action
	t.actions[b][a] = action
	return nil
}

// Validate 检查表的完整性和对称性
func (t *OutcomeTable) Validate() error {
	for _, a := range Kinds() {
		for _, b := range Kinds() {
			act := t.actions[a][b]
			if act < 0 || act >= actionCount {
				return fmt.Errorf("outcome %v x %v: invalid action %d", a, b, int(act))
			}
			if act != t.actions[b][a] {
				return fmt.Errorf("%w: %v x %v = %v, %v x %v = %v",
					ErrAsymmetricTable, a, b, act, b, a, t.actions[b][a])
			}
		}
	}
	return nil
}

// CollisionComponent 实体参与碰撞检测所需的数据
type CollisionComponent struct {
	Kind       Kind
	Collidable bool // false 时不与任何实体检测（如背景）
}
