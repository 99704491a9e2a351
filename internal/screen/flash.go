package screen

import tea "charm.land/bubbletea/v2"

// FlashKind selects the style of a flash message.
type FlashKind int

const (
	FlashInfo FlashKind = iota
	FlashSuccess
	FlashError
)

// FlashMsg asks the root model to show a one-line notice above the footer.
// The notice stays until the next key press or the next flash.
type FlashMsg struct {
	Kind FlashKind
	Text string
}

// Flash returns a command emitting a FlashMsg.
func Flash(kind FlashKind, text string) tea.Cmd {
	return func() tea.Msg {
		return FlashMsg{Kind: kind, Text: text}
	}
}
