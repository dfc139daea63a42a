package storage

import (
	"errors"
	"log"
	"strconv"

	"fourkara/backend/internal/config"
	"fourkara/backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateUser persists a new account.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByID loads a single user.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername loads a user by their unique username.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IssueChatToken creates and persists a fresh opaque websocket credential
// for the user and returns its key.
func (s *Service) IssueChatToken(userID uint) (string, error) {
	token := models.ChatToken{
		Key:    uuid.NewString(),
		UserID: userID,
	}
	if err := s.DB.Create(&token).Error; err != nil {
		log.Printf("ERROR: failed to issue chat token for user %d: %v", userID, err)
		return "", err
	}
	return token.Key, nil
}

// ResolveChatToken maps an opaque token key to its user. A missing or
// unknown key resolves to (nil, nil) rather than an error: admission
// logic downstream still runs and produces a clean rejection. Hits are
// cached in Redis under a TTL with the database as fallback.
func (s *Service) ResolveChatToken(key string) (*models.User, error) {
	if key == "" {
		return nil, nil
	}

	cacheKey := "chattoken:" + key
	if s.Redis != nil {
		v, err := s.Redis.Get(s.Ctx, cacheKey).Result()
		switch {
		case err == nil:
			if id, convErr := strconv.ParseUint(v, 10, 64); convErr == nil {
				user, lookupErr := s.GetUserByID(uint(id))
				if lookupErr == nil {
					return user, nil
				}
				if !errors.Is(lookupErr, ErrNotFound) {
					return nil, lookupErr
				}
				// Stale entry: the cached account no longer exists. Drop
				// the key and re-resolve against the database.
				s.Redis.Del(s.Ctx, cacheKey)
			}
		case !errors.Is(err, redis.Nil):
			log.Printf("WARNING: chat token cache lookup failed: %v", err)
		}
	}

	var token models.ChatToken
	err := s.DB.Preload("User").Where("key = ?", key).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: failed to resolve chat token: %v", err)
		return nil, err
	}
	if token.User.ID == 0 {
		// Orphaned token: its account is gone, so it resolves to
		// anonymous like an unknown key.
		return nil, nil
	}

	if s.Redis != nil {
		val := strconv.FormatUint(uint64(token.UserID), 10)
		if err := s.Redis.Set(s.Ctx, cacheKey, val, config.ChatTokenCacheTTL).Err(); err != nil {
			log.Printf("WARNING: failed to cache chat token: %v", err)
		}
	}

	user := token.User
	return &user, nil
}
