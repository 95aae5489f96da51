package transport

import (
	"fmt"
	"strings"
	"time"

	"github.com/ziutek/telnet"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/pkg/log"
)

const (
	DefaultTimeout = 120 * time.Second // some platforms render config views slowly
	BufferSize     = 4096
	PagerPrompt    = "--More--"

	defaultPrompt = "#"
)

// TelnetClient manages a Telnet connection to a switch
type TelnetClient struct {
	conn          *telnet.Conn
	config        entities.DeviceConfig
	prompt        string
	loginSequence []entities.AuthPrompt
	setupSequence []entities.AuthPrompt
}

// NewTelnetClient creates a new Telnet client with the given configuration
func NewTelnetClient(cfg entities.DeviceConfig) *TelnetClient {
	return &TelnetClient{config: cfg, prompt: defaultPrompt}
}

// SetPrompt configures the prompt string that terminates command output
func (tc *TelnetClient) SetPrompt(prompt string) {
	tc.prompt = prompt
}

// SetLoginSequence configures the in-band login exchange
func (tc *TelnetClient) SetLoginSequence(prompts []entities.AuthPrompt) {
	tc.loginSequence = prompts
}

// SetSetupSequence configures the post-login exchange (privilege, paging)
func (tc *TelnetClient) SetSetupSequence(prompts []entities.AuthPrompt) {
	tc.setupSequence = prompts
}

// Connect establishes a Telnet connection and walks the login and setup
// prompt sequences.
func (tc *TelnetClient) Connect() error {
	if tc.conn != nil {
		return nil
	}
	addr := tc.config.Target
	if !strings.Contains(addr, ":") {
		addr += ":23"
	}
	conn, err := telnet.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", tc.config.Target, err)
	}
	tc.conn = conn
	tc.conn.SetReadDeadline(time.Now().Add(DefaultTimeout))
	tc.conn.SetWriteDeadline(time.Now().Add(DefaultTimeout))
	log.WithDevice(tc.config.Target).Debug("Connected via telnet")

	prompts := append(append([]entities.AuthPrompt{}, tc.loginSequence...), tc.setupSequence...)
	if len(prompts) == 0 {
		prompts = []entities.AuthPrompt{
			{WaitFor: "Username:", SendCmd: tc.config.Username + "\n"},
			{WaitFor: "Password:", SendCmd: tc.config.Password + "\n", Secret: true},
			{WaitFor: tc.prompt, SendCmd: ""},
		}
	}

	for _, p := range prompts {
		output, err := tc.readUntil(p.WaitFor, DefaultTimeout)
		if err != nil {
			// A half-established session must not look connected.
			tc.conn.Close()
			tc.conn = nil
			return fmt.Errorf("failed to wait for %s: %v, output: %s", p.WaitFor, err, output)
		}
		if p.SendCmd != "" {
			tc.conn.Write([]byte(p.SendCmd))
			if !p.Secret {
				log.WithDevice(tc.config.Target).Debugf("Sent %q for prompt %q", strings.TrimSpace(p.SendCmd), p.WaitFor)
			}
		}
	}
	return nil
}

// readUntil reads from the Telnet connection until the pattern is found,
// feeding the pager a space whenever the device paginates.
func (tc *TelnetClient) readUntil(pattern string, timeout time.Duration) (string, error) {
	buffer := make([]byte, BufferSize)
	var output strings.Builder
	output.Grow(BufferSize)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		n, err := tc.conn.Read(buffer)
		if err != nil {
			return output.String(), fmt.Errorf("read error: %v", err)
		}
		if n > 0 {
			output.Write(buffer[:n])
			if tc.config.RawIO {
				fmt.Printf("Switch output: Read: %s\n", string(buffer[:n]))
			}
			text := output.String()
			if strings.Contains(text, pattern) {
				return stripPager(text), nil
			}
			if strings.HasSuffix(strings.TrimRight(text, " \r"), PagerPrompt) {
				tc.conn.Write([]byte(" "))
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return output.String(), fmt.Errorf("timeout waiting for %s", pattern)
}

// Disconnect closes the Telnet connection
func (tc *TelnetClient) Disconnect() {
	if tc.conn != nil {
		tc.conn.Close()
		log.WithDevice(tc.config.Target).Debug("Disconnected")
		tc.conn = nil
	}
}

func (tc *TelnetClient) IsConnected() bool {
	return tc.conn != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (tc *TelnetClient) ExecuteCommand(cmd string) (string, error) {
	log.WithDevice(tc.config.Target).Debugf("Executing: %s", cmd)
	tc.conn.Write([]byte(cmd + "\n"))
	output, err := tc.readUntil(tc.prompt, DefaultTimeout)
	if err != nil {
		return "", fmt.Errorf("error executing %s: %v", cmd, err)
	}
	output = trimEcho(output)
	if tc.config.RawIO {
		fmt.Printf("Switch output for '%s':\n%s\n", cmd, output)
	}
	return output, nil
}

// trimEcho drops the echoed command line and the trailing prompt line.
func trimEcho(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) > 1 {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return ""
}

func stripPager(output string) string {
	return strings.ReplaceAll(output, PagerPrompt, "")
}
