package component

import "github.com/milk9111/gatebreach/common"

// Transform is an entity's world pose. Yaw rotates about +Y; yaw 0 faces +Z.
type Transform struct {
	Position common.Vec3
	Yaw      float64
	Scale    float64
}

// Forward returns the unit facing vector.
func (t *Transform) Forward() common.Vec3 {
	return common.Forward(t.Yaw)
}

var TransformComponent = NewComponent[Transform]()
