package chathub_test

import (
	"testing"

	"fourkara/backend/internal/chathub"
	"fourkara/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func jobWithAcceptedBid(customerID, proID uint) *models.Job {
	bidID := uint(7)
	job := &models.Job{
		CustomerID:    customerID,
		IsCompleted:   true,
		AcceptedBidID: &bidID,
		AcceptedBid: &models.Bid{
			ProID: proID,
			Pro:   models.User{Username: "pro"},
		},
	}
	job.ID = 1
	job.AcceptedBid.ID = bidID
	job.Customer = models.User{Username: "customer"}
	return job
}

func TestIsParticipant_NoAcceptedBid(t *testing.T) {
	job := &models.Job{CustomerID: 10}
	job.ID = 1

	// Without an accepted bid there is no conversation: nobody is a
	// participant, the customer included.
	assert.False(t, chathub.IsParticipant(job, 10))
	assert.False(t, chathub.IsParticipant(job, 20))
	assert.False(t, chathub.IsParticipant(job, 0))
}

func TestIsParticipant_AfterAcceptance(t *testing.T) {
	job := jobWithAcceptedBid(10, 20)

	assert.True(t, chathub.IsParticipant(job, 10), "customer is a participant")
	assert.True(t, chathub.IsParticipant(job, 20), "hired pro is a participant")
	assert.False(t, chathub.IsParticipant(job, 30), "third parties are not")
	assert.False(t, chathub.IsParticipant(job, 0), "anonymous is never a participant")
}

func TestIsParticipant_NilJob(t *testing.T) {
	assert.False(t, chathub.IsParticipant(nil, 10))
}

func TestDeriveReceiver(t *testing.T) {
	job := jobWithAcceptedBid(10, 20)

	tests := []struct {
		name     string
		sender   uint
		receiver uint
		wantErr  bool
	}{
		{name: "customer sends to pro", sender: 10, receiver: 20},
		{name: "pro sends to customer", sender: 20, receiver: 10},
		{name: "third party rejected", sender: 30, wantErr: true},
		{name: "anonymous rejected", sender: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receiver, err := chathub.DeriveReceiver(job, tt.sender)
			if tt.wantErr {
				assert.ErrorIs(t, err, chathub.ErrNotParticipant)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.receiver, receiver)
		})
	}
}

func TestDeriveReceiver_NoAcceptedBid(t *testing.T) {
	job := &models.Job{CustomerID: 10}

	// Even the customer cannot send before a bid is accepted.
	_, err := chathub.DeriveReceiver(job, 10)
	assert.ErrorIs(t, err, chathub.ErrNotParticipant)
}
