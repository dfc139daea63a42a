package chathub

import (
	"errors"

	"fourkara/backend/internal/models"
)

// ErrNotParticipant is returned when a user is neither the job's customer
// nor the professional of its accepted bid.
var ErrNotParticipant = errors.New("not a participant of this job's conversation")

// IsParticipant reports whether the user belongs to the job's two-party
// conversation. It fails closed: a job without an accepted bid has no
// conversation, so nobody is a participant, the customer included.
//
// Pure with respect to its inputs. Callers must consult it against a
// freshly loaded job; bid acceptance can change the answer between two
// checks.
func IsParticipant(job *models.Job, userID uint) bool {
	if job == nil || job.AcceptedBid == nil || userID == 0 {
		return false
	}
	return userID == job.CustomerID || userID == job.AcceptedBid.ProID
}

// DeriveReceiver resolves the other party of the conversation for a
// message sent by senderID. Customers send to the hired professional and
// vice versa; anyone else is rejected.
func DeriveReceiver(job *models.Job, senderID uint) (uint, error) {
	if job == nil || job.AcceptedBid == nil {
		return 0, ErrNotParticipant
	}
	switch senderID {
	case job.CustomerID:
		return job.AcceptedBid.ProID, nil
	case job.AcceptedBid.ProID:
		return job.CustomerID, nil
	}
	return 0, ErrNotParticipant
}

// displayNameFor resolves the sender's display name from the job's own
// participants, avoiding an extra user lookup per message.
func displayNameFor(job *models.Job, senderID uint) string {
	if senderID == job.CustomerID {
		return job.Customer.DisplayName()
	}
	if job.AcceptedBid != nil && senderID == job.AcceptedBid.ProID {
		return job.AcceptedBid.Pro.DisplayName()
	}
	return ""
}
