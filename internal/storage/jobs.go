package storage

import (
	"errors"
	"log"

	"fourkara/backend/internal/models"

	"gorm.io/gorm"
)

// GetJob loads a job with its customer and, when present, the accepted
// bid and that bid's professional. Callers re-fetch rather than cache:
// bid acceptance can change the answer between two checks.
func (s *Service) GetJob(id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Preload("Customer").
		Preload("AcceptedBid").
		Preload("AcceptedBid.Pro").
		First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: failed to load job %d: %v", id, err)
		return nil, err
	}
	return &job, nil
}

// GetBid loads a bid together with its job.
func (s *Service) GetBid(id uint) (*models.Bid, error) {
	var bid models.Bid
	err := s.DB.Preload("Job").Preload("Pro").First(&bid, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: failed to load bid %d: %v", id, err)
		return nil, err
	}
	return &bid, nil
}

// AcceptBid performs the one-way Open -> Closed transition for the bid's
// job. Only the job's customer may accept, and only the first accept
// takes effect: the accepted bid and the completion flag are set by a
// single conditional UPDATE, so two concurrent accepts on the same job
// cannot both win. A repeat call on an already closed job changes nothing
// and returns the authoritative current state.
func (s *Service) AcceptBid(bidID, requestingUserID uint) (*models.Job, error) {
	bid, err := s.GetBid(bidID)
	if err != nil {
		return nil, err
	}
	if bid.Job == nil {
		return nil, ErrNotFound
	}
	if bid.Job.CustomerID != requestingUserID {
		return nil, ErrForbidden
	}

	res := s.DB.Model(&models.Job{}).
		Where("id = ? AND accepted_bid_id IS NULL", bid.JobID).
		Updates(map[string]interface{}{
			"accepted_bid_id": bid.ID,
			"is_completed":    true,
		})
	if res.Error != nil {
		log.Printf("ERROR: failed to accept bid %d on job %d: %v", bidID, bid.JobID, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		log.Printf("accept of bid %d on job %d was a no-op: job already closed", bidID, bid.JobID)
	}

	return s.GetJob(bid.JobID)
}

// CreateJob persists a new customer job posting.
func (s *Service) CreateJob(job *models.Job) error {
	return s.DB.Create(job).Error
}

// OpenJobs lists jobs that have not been completed, newest first.
func (s *Service) OpenJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Where("is_completed = ?", false).
		Order("created_at desc").
		Find(&jobs).Error
	return jobs, err
}

// JobsForCustomer lists every job posted by the given customer.
func (s *Service) JobsForCustomer(customerID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("AcceptedBid").Preload("AcceptedBid.Pro").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&jobs).Error
	return jobs, err
}

// JobsForPro lists the jobs whose accepted bid belongs to the given
// professional ("my work").
func (s *Service) JobsForPro(proID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("AcceptedBid").
		Joins("JOIN bids ON bids.id = jobs.accepted_bid_id").
		Where("bids.pro_id = ?", proID).
		Order("jobs.created_at desc").
		Find(&jobs).Error
	return jobs, err
}

// CreateBid persists a professional's bid on a job.
func (s *Service) CreateBid(bid *models.Bid) error {
	return s.DB.Create(bid).Error
}
