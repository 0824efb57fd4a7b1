package core

// Format selects how the chat client renders message text
type Format int

const (
	FormatPlain Format = iota
	FormatMarkdown
	FormatHTML
)

// InlineButton is a button attached to a message that answers with Data
type InlineButton struct {
	Text string
	Data string
}

// Message is a transport independent outbound chat message
type Message struct {
	Text   string
	Format Format

	// Keyboard replaces the reply keyboard when not nil
	Keyboard [][]string
	// RemoveKeyboard hides the reply keyboard
	RemoveKeyboard bool
	// Inline attaches inline buttons to the message
	Inline [][]InlineButton

	// Edit replaces the message the triggering callback belongs to instead
	// of sending a new one
	Edit bool
}

// Text builds a plain message
func Text(text string) Message {
	return Message{Text: text}
}

// Markdown builds a message rendered as legacy markdown
func Markdown(text string) Message {
	return Message{Text: text, Format: FormatMarkdown}
}

// HTML builds a message rendered as HTML
func HTML(text string) Message {
	return Message{Text: text, Format: FormatHTML}
}

// WithKeyboard returns a copy of the message carrying the reply keyboard
func (m Message) WithKeyboard(rows ...[]string) Message {
	m.Keyboard = rows
	m.RemoveKeyboard = false
	return m
}

// WithoutKeyboard returns a copy of the message that hides the keyboard
func (m Message) WithoutKeyboard() Message {
	m.Keyboard = nil
	m.RemoveKeyboard = true
	return m
}

// WithInline returns a copy of the message carrying inline buttons
func (m Message) WithInline(rows ...[]InlineButton) Message {
	m.Inline = rows
	return m
}

// AsEdit marks the message as a replacement of the callback message
func (m Message) AsEdit() Message {
	m.Edit = true
	return m
}
