package entities

// AuthPrompt represents a prompt-response pair during session setup
type AuthPrompt struct {
	WaitFor string // prompt to wait for
	SendCmd string // command to send (empty means just wait)
	Secret  bool   // suppress SendCmd in debug logs
}
