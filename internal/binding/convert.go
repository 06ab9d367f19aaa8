package binding

import (
	"strings"

	"github.com/Faultbox/divescroll/pkg/math"
)

// RotationPrefix is the channel prefix authored in degrees.
const RotationPrefix = "rotation."

// Identity returns the channels unchanged.
func Identity(c Channels) Channels {
	return c
}

// DegreesToRadians converts every channel under prefix from degrees to radians.
func DegreesToRadians(prefix string) ConvertFunc {
	return mapPrefix(prefix, math.DegToRad)
}

// RadiansToDegrees converts every channel under prefix from radians to
// degrees. It is the inverse of DegreesToRadians and is used to seed initial
// values from a live object's orientation.
func RadiansToDegrees(prefix string) ConvertFunc {
	return mapPrefix(prefix, math.RadToDeg)
}

func mapPrefix(prefix string, fn func(float32) float32) ConvertFunc {
	return func(in Channels) Channels {
		out := make(Channels, len(in))
		for k, v := range in {
			if strings.HasPrefix(k, prefix) {
				v = fn(v)
			}
			out[k] = v
		}
		return out
	}
}
