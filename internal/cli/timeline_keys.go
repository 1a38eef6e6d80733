package cli

import "github.com/charmbracelet/bubbles/key"

// timelineKeyMap declares the editor bindings in one place so the help
// footer and the dispatch logic cannot drift apart.
type timelineKeyMap struct {
	Quit        key.Binding
	Cancel      key.Binding
	Up          key.Binding
	Down        key.Binding
	NudgeLeft   key.Binding
	NudgeRight  key.Binding
	ShrinkEnd   key.Binding
	GrowEnd     key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	Save        key.Binding
	Discard     key.Binding
	Reload      key.Binding
}

func newTimelineKeyMap() timelineKeyMap {
	return timelineKeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Cancel:     key.NewBinding(key.WithKeys("esc")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		NudgeLeft:  key.NewBinding(key.WithKeys("left", "h")),
		NudgeRight: key.NewBinding(key.WithKeys("right", "l")),
		ShrinkEnd:  key.NewBinding(key.WithKeys("shift+left", "H")),
		GrowEnd:    key.NewBinding(key.WithKeys("shift+right", "L")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "=")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_")),
		Save:       key.NewBinding(key.WithKeys("s")),
		Discard:    key.NewBinding(key.WithKeys("x")),
		Reload:     key.NewBinding(key.WithKeys("r")),
	}
}
