package storage

import (
	"errors"
	"log"

	"fourkara/backend/internal/models"

	"gorm.io/gorm"
)

// SaveMessage appends a message to the conversation log. The row is
// never updated or deleted afterwards; msg.ID and msg.CreatedAt are
// filled in by gorm on insert.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: failed to save message for job %d: %v", msg.JobID, err)
		return err
	}
	return nil
}

// RecentMessages returns the most recent `limit` messages of a job in
// ascending chronological order. The newest rows are selected descending
// and the slice is reversed, so the cap applies to the tail of the
// conversation, not its head. A job with no messages (or no job at all)
// yields an empty slice.
func (s *Service) RecentMessages(jobID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Preload("Sender").
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: failed to load recent messages for job %d: %v", jobID, err)
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// AllMessages returns the full conversation for a job, oldest first.
func (s *Service) AllMessages(jobID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Preload("Sender").
		Where("job_id = ?", jobID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: failed to load messages for job %d: %v", jobID, err)
		return nil, err
	}
	return messages, nil
}

func reverseMessages(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
