package chathub_test

import "fourkara/backend/internal/models"

// MockClient is a test double for the chathub.Client interface. Frames
// delivered by the hub land in RecvChannel.
type MockClient struct {
	userID      uint
	jobID       uint
	closed      bool
	RecvChannel chan models.Frame
}

func newMockClient(userID, jobID uint) *MockClient {
	return &MockClient{
		userID:      userID,
		jobID:       jobID,
		RecvChannel: make(chan models.Frame, 16), // buffered to prevent blocking in tests
	}
}

func (c *MockClient) GetUserID() uint { return c.userID }

func (c *MockClient) GetJobID() uint { return c.jobID }

func (c *MockClient) GetSendChannel() chan<- models.Frame { return c.RecvChannel }

func (c *MockClient) Run() {}

func (c *MockClient) Close() { c.closed = true }

// DrainFrames empties the receive channel, returning everything that was
// delivered so far.
func (c *MockClient) DrainFrames() []models.Frame {
	var frames []models.Frame
	for {
		select {
		case f := <-c.RecvChannel:
			frames = append(frames, f)
		default:
			return frames
		}
	}
}
