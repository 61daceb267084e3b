package components

import "github.com/decker502/wavearena/pkg/types"

// PickupComponent 弹药掉落物
type PickupComponent struct {
	AmmoType types.AmmoType // 弹药类型
	Amount   int            // 拾取后增加的备弹数
	Radius   float64        // 拾取半径
}
