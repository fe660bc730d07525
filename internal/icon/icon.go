package icon

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

const defaultSize = 38

// Glyph identifies a FontAwesome icon together with how it is drawn.
type Glyph struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

var (
	Circle  = Glyph{Name: "circle-thin", Color: "#F7CD2E", Size: defaultSize}
	Cross   = Glyph{Name: "times", Color: "#38CC77", Size: defaultSize}
	Default = Glyph{Name: "pencil", Color: "#0D0D0D", Size: defaultSize}
)

// ForLabel maps a mark label to its glyph. Unknown labels get Default.
func ForLabel(label string) Glyph {
	switch label {
	case entity.LabelCircle:
		return Circle
	case entity.LabelCross:
		return Cross
	default:
		return Default
	}
}

func ForMark(mark entity.Mark) Glyph {
	return ForLabel(mark.Label())
}
