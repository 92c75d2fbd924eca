package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// parseVec3 parses a comma-separated "x,y,z" flag value. An empty string
// yields a vector with every component at def.
func parseVec3(s string, def float64) (mgl64.Vec3, error) {
	if strings.TrimSpace(s) == "" {
		return mgl64.Vec3{def, def, def}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected x,y,z but got %q", s)
	}

	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = f
	}
	return v, nil
}

// radians converts a per-axis degree vector to radians.
func radians(deg mgl64.Vec3) mgl64.Vec3 {
	return deg.Mul(math.Pi / 180)
}

// degrees converts a per-axis radian vector to degrees.
func degrees(rad mgl64.Vec3) mgl64.Vec3 {
	return rad.Mul(180 / math.Pi)
}
