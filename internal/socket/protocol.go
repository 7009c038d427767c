package socket

// Message represents a command sent to the running tdiff instance
type Message struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`

	// ResponseChan carries the reply back from the app's event loop;
	// it never crosses the wire
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Command types
const (
	CommandPing   = "ping"
	CommandOpen   = "open"
	CommandReload = "reload"
	CommandStatus = "status"
)
