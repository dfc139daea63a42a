package storage

import (
	"context"
	"errors"

	"fourkara/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to handlers, which map them onto HTTP (or
// websocket-close) responses.
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("operation not permitted")
)

// Storage is the persistence surface consumed by the chat hub and the
// HTTP handlers. The job/bid side acts as the ledger, the message side as
// the append-only conversation log, and the token side as the credential
// store for websocket handshakes.
type Storage interface {
	// Ledger
	GetJob(id uint) (*models.Job, error)
	GetBid(id uint) (*models.Bid, error)
	AcceptBid(bidID, requestingUserID uint) (*models.Job, error)
	CreateJob(job *models.Job) error
	OpenJobs() ([]models.Job, error)
	JobsForCustomer(customerID uint) ([]models.Job, error)
	JobsForPro(proID uint) ([]models.Job, error)
	CreateBid(bid *models.Bid) error

	// Message log
	SaveMessage(msg *models.Message) error
	RecentMessages(jobID uint, limit int) ([]models.Message, error)
	AllMessages(jobID uint) ([]models.Message, error)

	// Users and chat credentials
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	IssueChatToken(userID uint) (string, error)
	ResolveChatToken(key string) (*models.User, error)
}

// Service implements Storage on top of PostgreSQL (gorm) with Redis as a
// read-through cache for chat token resolution.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService constructs the storage service. The Redis client may
// be nil, in which case token resolution always hits the database.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
