package game

import "github.com/gdamore/tcell/v2"

// Action represents one user-requested operation.
type Action uint8

const (
	ActionNone Action = iota
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionZoomIn
	ActionZoomOut
	ActionZoomFit
	ActionToggleFollow
	ActionToggleRotate
	ActionToggleGrid
	ActionAddMark
	ActionClearMarks
	ActionPrintRect
	ActionToggleOverlay
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionQuit
)

// keyToAction maps a tcell key event to an action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyTab:
		return ActionToggleOverlay
	case tcell.KeyEscape:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case '+', '=':
		return ActionZoomIn
	case '-', '_':
		return ActionZoomOut
	case '0':
		return ActionZoomFit
	case 'f', 'F':
		return ActionToggleFollow
	case 'r', 'R':
		return ActionToggleRotate
	case 'g', 'G':
		return ActionToggleGrid
	case 'm', 'M':
		return ActionAddMark
	case 'c', 'C':
		return ActionClearMarks
	case 'p', 'P':
		return ActionPrintRect
	case 'w', 'W':
		return ActionForward
	case 's', 'S':
		return ActionBackward
	case 'a', 'A':
		return ActionTurnLeft
	case 'd', 'D':
		return ActionTurnRight
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
