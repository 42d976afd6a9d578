package singleinstance

// This file defines the API for single-instance ownership and pick delegation.

import (
	"context"
	"errors"
)

// ErrServerClosed is returned by Next once the server is closed.
var ErrServerClosed = errors.New("singleinstance: server closed")

// Server owns the TCP endpoint and answers pick requests.
type Server interface {
	// Start listens on the first port of the configured range. It fails if
	// the port is taken, which means another resident owns it.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted request as a Conn.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn represents one client connection awaiting a pick result.
type Conn interface {
	Request() Request
	// RespondSuccess sends the committed color in hex form.
	RespondSuccess(hex string) error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	Close() error
}

// Request represents a single delegated request.
type Request struct {
	Action string
}

const ActionPick = "PICK"

// Client attempts to delegate a pick to a resident picker.
type Client interface {
	// TryPick scans the port range and asks the first resident found to
	// pick a color. If no resident is found, returns delegated=false, err=nil.
	TryPick(ctx context.Context) (delegated bool, hex string, err error)
}

// NewServer returns TCP implementation.
func NewServer() Server { return newTcpServer() }

// NewClient returns TCP implementation.
func NewClient() Client { return newTcpClient() }
