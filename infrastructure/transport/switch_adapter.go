package transport

import (
	"github.com/openrail/swctl/domain/entities"
)

// SwitchAdapter implements the SwitchRepository port on top of a transport client
type SwitchAdapter struct {
	client Client
}

// NewSwitchAdapter creates a new switch adapter
func NewSwitchAdapter(client Client) *SwitchAdapter {
	return &SwitchAdapter{
		client: client,
	}
}

// Connect connects to the switch
func (s *SwitchAdapter) Connect() error {
	return s.client.Connect()
}

// Disconnect disconnects from the switch
func (s *SwitchAdapter) Disconnect() {
	s.client.Disconnect()
}

// ExecuteCommand executes a command on the switch
func (s *SwitchAdapter) ExecuteCommand(cmd string) (string, error) {
	return s.client.ExecuteCommand(cmd)
}

// IsConnected checks if connected
func (s *SwitchAdapter) IsConnected() bool {
	return s.client.IsConnected()
}

// Client is the transport session contract shared by telnet and SSH
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// Configurable allows a platform driver to shape the session after client
// creation: prompt terminator, login exchange, post-login setup.
type Configurable interface {
	SetPrompt(prompt string)
	SetLoginSequence(prompts []entities.AuthPrompt)
	SetSetupSequence(prompts []entities.AuthPrompt)
}
