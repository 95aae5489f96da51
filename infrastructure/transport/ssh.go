package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/pkg/log"
)

// SSHClient manages an interactive SSH shell session with a switch.
// Authentication happens out of band; only the setup sequence runs in-band.
type SSHClient struct {
	config        entities.DeviceConfig
	prompt        string
	setupSequence []entities.AuthPrompt
	client        *ssh.Client
	session       *ssh.Session
	stdin         io.WriteCloser
	reader        *bufio.Reader
	netConn       net.Conn
}

// NewSSHClient creates a new SSH client with the given configuration
func NewSSHClient(cfg entities.DeviceConfig) *SSHClient {
	return &SSHClient{config: cfg, prompt: defaultPrompt}
}

// SetPrompt configures the prompt string that terminates command output
func (sc *SSHClient) SetPrompt(prompt string) {
	sc.prompt = prompt
}

// SetLoginSequence is a no-op; SSH carries credentials in the handshake.
func (sc *SSHClient) SetLoginSequence(prompts []entities.AuthPrompt) {}

// SetSetupSequence configures the post-login exchange (privilege, paging)
func (sc *SSHClient) SetSetupSequence(prompts []entities.AuthPrompt) {
	sc.setupSequence = prompts
}

func (sc *SSHClient) Connect() error {
	if sc.IsConnected() {
		return nil
	}
	addr := net.JoinHostPort(sc.config.Target, "22")
	sshConfig := &ssh.ClientConfig{
		User:            sc.config.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(sc.config.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DefaultTimeout,
	}

	dialer := &net.Dialer{Timeout: DefaultTimeout}
	rawConn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s via SSH: %v", sc.config.Target, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(rawConn, addr, sshConfig)
	if err != nil {
		rawConn.Close()
		return fmt.Errorf("failed to establish SSH client connection to %s: %v", sc.config.Target, err)
	}

	client := ssh.NewClient(clientConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		rawConn.Close()
		return fmt.Errorf("failed to create SSH session for %s: %v", sc.config.Target, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		client.Close()
		rawConn.Close()
		return fmt.Errorf("failed to request PTY for %s: %v", sc.config.Target, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		rawConn.Close()
		return fmt.Errorf("failed to get stdin pipe for %s: %v", sc.config.Target, err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		rawConn.Close()
		return fmt.Errorf("failed to get stdout pipe for %s: %v", sc.config.Target, err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		rawConn.Close()
		return fmt.Errorf("failed to start shell for %s: %v", sc.config.Target, err)
	}

	sc.client = client
	sc.session = session
	sc.stdin = stdin
	sc.reader = bufio.NewReader(stdout)
	sc.netConn = rawConn

	log.WithDevice(sc.config.Target).Debug("Connected via SSH")

	for _, p := range sc.setupSequence {
		if _, err := sc.readUntil(p.WaitFor, DefaultTimeout); err != nil {
			sc.Disconnect()
			return err
		}
		if p.SendCmd != "" {
			if err := sc.send(p.SendCmd); err != nil {
				sc.Disconnect()
				return fmt.Errorf("failed to send setup command to %s: %v", sc.config.Target, err)
			}
		}
	}
	if len(sc.setupSequence) == 0 {
		if _, err := sc.readUntil(sc.prompt, DefaultTimeout); err != nil {
			sc.Disconnect()
			return err
		}
	}

	return nil
}

func (sc *SSHClient) Disconnect() {
	if sc.session != nil {
		sc.session.Close()
		sc.session = nil
	}
	if sc.client != nil {
		sc.client.Close()
		sc.client = nil
	}
	if sc.netConn != nil {
		sc.netConn.Close()
		sc.netConn = nil
	}
	sc.stdin = nil
	sc.reader = nil
	log.WithDevice(sc.config.Target).Debug("Disconnected")
}

func (sc *SSHClient) IsConnected() bool {
	return sc.session != nil && sc.client != nil
}

func (sc *SSHClient) ExecuteCommand(cmd string) (string, error) {
	log.WithDevice(sc.config.Target).Debugf("Executing: %s", cmd)
	if err := sc.send(cmd + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command %s: %v", cmd, err)
	}

	output, err := sc.readUntil(sc.prompt, DefaultTimeout)
	if err != nil {
		return "", fmt.Errorf("error executing %s: %v", cmd, err)
	}

	output = trimEcho(output)
	if sc.config.RawIO {
		fmt.Printf("Switch output for '%s':\n%s\n", cmd, output)
	}
	return output, nil
}

func (sc *SSHClient) send(data string) error {
	_, err := sc.stdin.Write([]byte(data))
	return err
}

func (sc *SSHClient) readUntil(pattern string, timeout time.Duration) (string, error) {
	buffer := make([]byte, BufferSize)
	var output strings.Builder
	output.Grow(BufferSize)
	deadline := time.Now().Add(timeout)

	for {
		if sc.netConn != nil {
			_ = sc.netConn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		}

		n, err := sc.reader.Read(buffer)
		if n > 0 {
			output.Write(buffer[:n])
			if sc.config.RawIO {
				fmt.Printf("Switch output: Read: %s\n", string(buffer[:n]))
			}
			text := output.String()
			if strings.Contains(text, pattern) {
				return stripPager(text), nil
			}
			if strings.HasSuffix(strings.TrimRight(text, " \r"), PagerPrompt) {
				_ = sc.send(" ")
			}
		}

		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				if time.Now().After(deadline) {
					return output.String(), fmt.Errorf("timeout waiting for %s", pattern)
				}
				continue
			}
			return output.String(), fmt.Errorf("read error: %v", err)
		}

		if time.Now().After(deadline) {
			return output.String(), fmt.Errorf("timeout waiting for %s", pattern)
		}
	}
}
