// Package seed provides database seeding utilities for development and
// testing. Never run against production data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds and persists demo data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed populates the database with test data.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	if err := s.createFollowGraph(users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE follows, shares, comments, likes, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) createUsers(count int) ([]models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := make([]models.User, 0, count)

	// A known admin and a known regular account for manual testing.
	users = append(users,
		models.User{
			Name:           "admin",
			Email:          "admin@example.com",
			Password:       string(hashedPassword),
			Role:           models.RoleAdmin,
			Description:    "Keeps the lights on.",
			ProfilePicture: "https://i.pravatar.cc/150?u=admin",
		},
		models.User{
			Name:           "test",
			Email:          "test@example.com",
			Password:       string(hashedPassword),
			Role:           models.RoleUser,
			Description:    "Just here to look around.",
			ProfilePicture: "https://i.pravatar.cc/150?u=test",
		},
	)

	for i := len(users); i < count; i++ {
		name := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 999)))
		users = append(users, models.User{
			Name:             name,
			Email:            gofakeit.Email(),
			Password:         string(hashedPassword),
			Role:             models.RoleUser,
			Description:      gofakeit.Sentence(10),
			ProfilePicture:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			CommissionStatus: gofakeit.Bool(),
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) createPosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			Caption:  gofakeit.Paragraph(1, 3, 8, " "),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			UserID:   author.ID,
		}
		// Spread posts over the last 90 days so feeds look lived-in.
		post.CreatedAt = time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour)
		posts = append(posts, post)
	}

	if err := s.db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) createEngagement(users []models.User, posts []models.Post) error {
	var likes, comments, shares int

	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if s.rng.Intn(100) < 20 {
				if err := s.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
				likes++
			}
			if s.rng.Intn(100) < 8 {
				comment := models.Comment{
					UserID:  user.ID,
					PostID:  post.ID,
					Content: gofakeit.Sentence(s.rng.Intn(12) + 3),
				}
				if err := s.db.Create(&comment).Error; err != nil {
					return err
				}
				comments++
			}
			if s.rng.Intn(100) < 3 {
				if err := s.db.Create(&models.Share{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
				shares++
			}
		}
	}

	log.Printf("%d likes, %d comments, %d shares created", likes, comments, shares)
	return nil
}

func (s *Seeder) createFollowGraph(users []models.User) error {
	var edges int
	for _, follower := range users {
		for _, target := range users {
			if follower.ID == target.ID {
				continue
			}
			if s.rng.Intn(100) < 15 {
				follow := models.Follow{FollowerID: follower.ID, FollowingID: target.ID}
				if err := s.db.Create(&follow).Error; err != nil {
					return err
				}
				edges++
			}
		}
	}
	log.Printf("%d follow edges created", edges)
	return nil
}
