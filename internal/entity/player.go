package entity

// Mark is what a cell holds: a player symbol or EmptyCell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	LabelCross  = "cross"
	LabelCircle = "circle"
)

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Label is the icon category of the mark.
func (that Mark) Label() string {
	switch that {
	case PlayerX:
		return LabelCross
	case PlayerO:
		return LabelCircle
	default:
		return ""
	}
}
