package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

// Client represents a client connection to a running instance's socket
type Client struct {
	socketPath string
}

// NewClient creates a client for the socket at the given path
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// FindRunningInstance looks for a live instance on the default socket path
// and verifies it answers a ping. A stale socket file left by a crashed
// process does not count as running.
func FindRunningInstance() (string, error) {
	socketPath := DefaultSocketPath()
	client, err := NewClient(socketPath)
	if err != nil {
		return "", fmt.Errorf("no running tdiff instance found")
	}
	if _, err := client.Ping(); err != nil {
		return "", fmt.Errorf("no running tdiff instance found")
	}
	return socketPath, nil
}

// Send sends a message to the server and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	decoder := json.NewDecoder(conn)
	var response Response
	if err := decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// Ping checks whether the server is alive
func (c *Client) Ping() (*Response, error) {
	return c.Send(Message{Command: CommandPing})
}

// SendOpen asks the running instance to load a pair of files
func (c *Client) SendOpen(oldPath, newPath string) (*Response, error) {
	return c.Send(Message{Command: CommandOpen, Args: []string{oldPath, newPath}})
}

// SendReload asks the running instance to re-read its current files
func (c *Client) SendReload() (*Response, error) {
	return c.Send(Message{Command: CommandReload})
}

// SendStatus asks the running instance for a one-line summary
func (c *Client) SendStatus() (*Response, error) {
	return c.Send(Message{Command: CommandStatus})
}
