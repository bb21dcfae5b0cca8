package internal

import "fmt"

// GatewayError represents a transport-level failure talking to the chat
// gateway (unreachable host, non-2xx status, undecodable body)
type GatewayError struct {
	Endpoint string
	Status   int // 0 when the request never reached the server
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway error: %s returned %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("gateway error: %s: %v", e.Endpoint, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// StoreError represents errors accessing the persistence store
type StoreError struct {
	Op  string // "save", "load", "delete", "clear"
	Key string // session id or message id
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during chart export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
