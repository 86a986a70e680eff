package view

import (
	"fmt"
)

// Mode - режим экрана записи
type Mode int

const (
	ModeAdd Mode = iota
	ModeView
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeView:
		return "view"
	case ModeEdit:
		return "edit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Action - действие кнопки в панели экрана
type Action string

const (
	ActionSwitchType Action = "switch-type"
	ActionEdit       Action = "edit"
	ActionDone       Action = "done"
)

// Chrome - оформление экрана для режима
type Chrome struct {
	ButtonTitle string
	Action      Action
	// Next - режим после нажатия кнопки; для смены типа режим не меняется
	Next     Mode
	ShowInfo bool
}
