// Package menu implements the arrow-key navigable menu.
//
// A Menu holds no business logic: each Item carries a tagged Action that the
// caller interprets in its dispatch function. Root menus loop after every
// dispatch until dispatch asks them to stop; other menus return the confirmed
// item.
package menu

import (
	"strings"

	"chdbatch/internal/batch"
	"chdbatch/internal/console"
)

// DefaultPrompt is shown above the item list.
const DefaultPrompt = "Select an option"

// ActionKind tags what an item does when confirmed.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionImport
	ActionRunBatch
	ActionSetFlag
	ActionLogMenu
	ActionOpenLog
	ActionDeleteLog
	ActionQuit
)

// Action is the tagged variant bound to an item.
type Action struct {
	Kind      ActionKind
	Operation batch.Kind
	Flag      batch.Flag
	Value     bool
}

// Item is one selectable row.
type Item struct {
	Label       string
	Description string
	Action      Action
}

// Menu is a titled list of items.
type Menu struct {
	Title       string
	Description string
	Prompt      string
	Root        bool
	Items       []Item
	// Selected is the highlighted index when Run starts.
	Selected int
	// Refresh, when set, runs before every display pass so a root menu can
	// rebuild its items and description from current state.
	Refresh func(m *Menu)
}

// New returns a menu with the default prompt.
func New(title string) *Menu {
	return &Menu{Title: title, Prompt: DefaultPrompt}
}

// Add appends an item.
func (m *Menu) Add(label string, action Action, description string) {
	m.Items = append(m.Items, Item{Label: label, Description: description, Action: action})
}

// AddReturn appends a no-op item, labelled "Back" unless label is given.
func (m *Menu) AddReturn(label string) {
	if label == "" {
		label = "Back"
	}
	m.Add(label, Action{Kind: ActionNone}, "")
}

// Run displays the menu and handles keys until an item is confirmed. For a
// root menu, dispatch is called for every confirmed item and the loop ends
// when it returns false. The confirmed item is returned; an empty menu is
// drawn once and returns the zero Item.
func (m *Menu) Run(screen *console.Screen, keys console.KeySource, dispatch func(Item) bool) (Item, error) {
	index := m.Selected
	for {
		if m.Refresh != nil {
			m.Refresh(m)
		}
		if len(m.Items) == 0 {
			m.render(screen, -1)
			return Item{}, nil
		}
		index = min(max(index, 0), len(m.Items)-1)
		m.render(screen, index)

		key, err := keys.ReadKey()
		if err != nil {
			return Item{}, err
		}
		switch key {
		case console.KeyUp:
			if index > 0 {
				index--
			}
		case console.KeyDown:
			if index < len(m.Items)-1 {
				index++
			}
		case console.KeyRight:
			index = len(m.Items) - 1
		case console.KeyLeft:
			index = 0
		case console.KeyEnter:
			screen.Clear()
			item := m.Items[index]
			proceed := true
			if dispatch != nil {
				proceed = dispatch(item)
			}
			if !m.Root || !proceed {
				return item, nil
			}
		}
	}
}

func (m *Menu) render(screen *console.Screen, index int) {
	width := screen.Width()
	screen.Clear()
	m.renderHeader(screen, width)
	screen.Write("")

	if m.Description != "" {
		screen.Write("")
		screen.Write(m.Description)
		screen.Write("")
	}
	rule := strings.Repeat("-", width+1)
	if m.Prompt != "" {
		screen.Write("")
		screen.Write(m.Prompt)
		screen.Write(rule)
	}

	for i, item := range m.Items {
		if i == index {
			screen.Write(screen.Inverted(padRight("    "+item.Label, width+1)))
			continue
		}
		screen.Write("  " + item.Label)
	}
	screen.Write(rule)

	if index >= 0 && m.Items[index].Description != "" {
		screen.Write(screen.Dim("Description:"))
		screen.Write(screen.Dim(m.Items[index].Description))
		screen.Write("")
	}
}

func (m *Menu) renderHeader(screen *console.Screen, width int) {
	spacer := strings.Repeat(" ", width+1)
	lead := max(width/2-len(m.Title)/2+1, 0)
	title := padRight(strings.Repeat(" ", lead)+m.Title, width+1)
	screen.Write(screen.Inverted(spacer))
	screen.Write(screen.Inverted(title))
	screen.Write(screen.Inverted(spacer))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
