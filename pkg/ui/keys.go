package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard bindings. Scrolling keys are handled by the viewport.
type keyMap struct {
	Toggle   []key.Binding // one per summary group, in display order
	NextBtn  key.Binding
	PrevBtn  key.Binding
	Press    key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	Copy     key.Binding
	Reload   key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "toggle summary 1")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "toggle summary 2")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "toggle summary 3")),
		},
		NextBtn:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next button")),
		PrevBtn:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev button")),
		Press:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "read more/less")),
		NextItem: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next item")),
		PrevItem: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev item")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders the short binding reference shown in the footer.
func (k keyMap) helpLine() string {
	bindings := []key.Binding{k.Toggle[0], k.NextBtn, k.Press, k.NextItem, k.Copy, k.Reload, k.Export, k.Quit}
	out := "1-3 toggle summaries"
	for _, b := range bindings[1:] {
		h := b.Help()
		out += " • " + h.Key + " " + h.Desc
	}
	return out + " • ↑/↓ scroll"
}
