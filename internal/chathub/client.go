package chathub

import "fourkara/backend/internal/models"

// Client is one admitted connection, bound to a single (job, user) pair
// for its whole lifetime. It abstracts the underlying transport so the
// hub can manage connections uniformly and tests can use doubles.
type Client interface {
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() uint
	// GetJobID returns the job conversation the connection belongs to.
	GetJobID() uint

	// GetSendChannel returns the channel the hub writes outbound frames
	// to. It is a send-only channel from the hub's point of view.
	GetSendChannel() chan<- models.Frame

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client down. Safe to call more than once.
	Close()
}
