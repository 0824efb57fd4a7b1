package conversation

// Sender identifies the chat user behind an update
type Sender struct {
	ID        int64
	Username  string
	FirstName string
}

// Handle is the name stored with the account: the username, or the first
// name for users without one
func (s Sender) Handle() string {
	if s.Username != "" {
		return s.Username
	}
	return s.FirstName
}

// Greeting is the name used to address the user
func (s Sender) Greeting() string {
	if s.Username != "" {
		return "@" + s.Username
	}
	return s.FirstName
}

// Input is one of TextMessage, Command or CallbackAction
type Input interface {
	isInput()
}

// TextMessage is free text or a reply keyboard button press
type TextMessage struct {
	Text string
}

// Command is a slash command with its whitespace separated arguments
type Command struct {
	Name string
	Args []string
}

// CallbackAction is an inline button press carrying the button data
type CallbackAction struct {
	Data string
}

func (TextMessage) isInput()    {}
func (Command) isInput()        {}
func (CallbackAction) isInput() {}

// Update is an inbound chat event resolved by the transport
type Update struct {
	Sender Sender
	Input  Input
}
