package main

import (
	"fmt"
	"log"
	"os"

	"fourkara/backend/internal/config"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Small operator CLI for local development and support work: seed
// accounts, mint chat tokens, inspect open jobs.
func main() {
	cfg := config.Load()
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewStorageService(db, nil) // no redis needed for the CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "create-user":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin create-user <username> <password> [pro]")
			os.Exit(1)
		}
		isPro := len(os.Args) > 4 && os.Args[4] == "pro"
		if err := createUser(s, os.Args[2], os.Args[3], isPro); err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s created.\n", os.Args[2])
	case "chat-token":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin chat-token <username>")
			os.Exit(1)
		}
		key, err := issueToken(s, os.Args[2])
		if err != nil {
			log.Fatalf("Error issuing chat token: %v", err)
		}
		fmt.Println(key)
	case "open-jobs":
		jobs, err := s.OpenJobs()
		if err != nil {
			log.Fatalf("Error listing jobs: %v", err)
		}
		for _, job := range jobs {
			fmt.Printf("%d\t%s (customer %d)\n", job.ID, job.Title, job.CustomerID)
		}
	default:
		usage()
	}
}

func createUser(s *storage.Service, username, password string, isPro bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(&models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsPro:        isPro,
	})
}

func issueToken(s *storage.Service, username string) (string, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return "", err
	}
	return s.IssueChatToken(user.ID)
}

func usage() {
	fmt.Println("Usage: admin <create-user|chat-token|open-jobs> [args]")
	os.Exit(1)
}
