package legend

import (
	"strings"

	"github.com/matzehuels/plotkit/pkg/errors"
)

// Location names the corner or edge of the legend box that is pinned to
// the anchor point, or to the matching corner of the figure when no anchor
// is set.
type Location int

const (
	Best Location = iota
	UpperRight
	UpperLeft
	LowerLeft
	LowerRight
	Right
	CenterLeft
	CenterRight
	LowerCenter
	UpperCenter
	Center
)

var locationNames = []string{
	Best:        "best",
	UpperRight:  "upper right",
	UpperLeft:   "upper left",
	LowerLeft:   "lower left",
	LowerRight:  "lower right",
	Right:       "right",
	CenterLeft:  "center left",
	CenterRight: "center right",
	LowerCenter: "lower center",
	UpperCenter: "upper center",
	Center:      "center",
}

// String returns the location name.
func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[l]
}

// ParseLocation parses a location name such as "upper left". Hyphens and
// underscores are accepted in place of spaces.
func ParseLocation(s string) (Location, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for i, name := range locationNames {
		if name == norm {
			return Location(i), nil
		}
	}
	return Best, errors.New(errors.ErrCodeInvalidLocation, "unknown legend location %q", s)
}

// align returns the position of the pinned point within the legend box,
// as fractions of its width and height. Best has no layout search here
// and behaves like UpperRight.
func (l Location) align() (x, y float64) {
	switch l {
	case UpperLeft:
		return 0, 1
	case LowerLeft:
		return 0, 0
	case LowerRight:
		return 1, 0
	case Right, CenterRight:
		return 1, 0.5
	case CenterLeft:
		return 0, 0.5
	case LowerCenter:
		return 0.5, 0
	case UpperCenter:
		return 0.5, 1
	case Center:
		return 0.5, 0.5
	default:
		return 1, 1
	}
}
