package region

import "math"

// Mode selects which region-growing algorithm runs on a click.
type Mode int

const (
	WorldGrid Mode = iota // world-space cubic cell of the clicked point
	UVGrid                // UV-space cell of the clicked face
	FloodFill             // normal-bounded breadth-first growth
	Lasso                 // screen-space freeform polygon
)

func (m Mode) String() string {
	switch m {
	case WorldGrid:
		return "world-grid"
	case UVGrid:
		return "uv-grid"
	case FloodFill:
		return "flood-fill"
	case Lasso:
		return "lasso"
	default:
		return "unknown"
	}
}

// Defaults for the numeric selection parameters.
const (
	DefaultGridSize       = 1.0
	DefaultUVGridSize     = 0.25
	DefaultAngleThreshold = 30 * math.Pi / 180
)

// Params holds the numeric parameters shared by the selection modes.
type Params struct {
	GridSize       float64 // world-space cell edge length
	UVGridSize     float64 // UV-space cell edge length
	AngleThreshold float64 // flood-fill normal deviation bound, radians
}

// DefaultParams returns the parameter defaults.
func DefaultParams() Params {
	return Params{
		GridSize:       DefaultGridSize,
		UVGridSize:     DefaultUVGridSize,
		AngleThreshold: DefaultAngleThreshold,
	}
}

// cellOf quantizes a coordinate into a grid cell using floor division,
// so cell boundaries are deterministic and symmetric around the origin.
func cellOf(v, size float64) int {
	return int(math.Floor(v / size))
}
