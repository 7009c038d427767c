package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Server represents a Unix socket server for accepting external commands
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
}

// DefaultSocketPath returns the fixed socket path of the running instance:
// $XDG_RUNTIME_DIR/tui-diff.sock, or /tmp/tui-diff-<uid>.sock when
// XDG_RUNTIME_DIR is unset
func DefaultSocketPath() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-diff.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("tui-diff-%d.sock", os.Getuid()))
}

// NewServer creates a Unix socket server on the default socket path
func NewServer() (*Server, error) {
	return NewServerAt(DefaultSocketPath())
}

// NewServerAt creates a Unix socket server on an explicit path
func NewServerAt(socketPath string) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	// Remove a stale socket left by a previous run
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	log.Printf("Socket server listening on: %s", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10), // Buffer up to 10 messages
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

// acceptLoop continuously accepts new connections
func (s *Server) acceptLoop() {
	for {
		select {
		case <-s.stopChan:
			return
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				// Check if we're shutting down
				select {
				case <-s.stopChan:
					return
				default:
					log.Printf("Error accepting connection: %v", err)
					continue
				}
			}
			go s.handleConnection(conn)
		}
	}
}

// handleConnection processes a single client connection. Every command is
// synchronous: the app loop answers through the message's response channel.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		encoder.Encode(Response{
			Success: false,
			Message: fmt.Sprintf("Invalid message format: %v", err),
		})
		return
	}

	if msg.Command == "" {
		encoder.Encode(Response{
			Success: false,
			Message: "Missing command field",
		})
		return
	}

	msg.ResponseChan = make(chan *Response, 1)

	select {
	case s.msgChan <- msg:
		select {
		case response := <-msg.ResponseChan:
			encoder.Encode(response)
		case <-time.After(10 * time.Second):
			encoder.Encode(Response{
				Success: false,
				Message: "Command timed out",
			})
		case <-s.stopChan:
			encoder.Encode(Response{
				Success: false,
				Message: "Server is shutting down",
			})
		}
	case <-s.stopChan:
		encoder.Encode(Response{
			Success: false,
			Message: "Server is shutting down",
		})
	}
}

// Messages returns the channel for receiving messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and cleans up resources
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	// Clean up socket file
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	log.Printf("Socket server stopped")
}
