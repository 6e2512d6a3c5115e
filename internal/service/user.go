package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/models"
)

// UserService handles user profiles and subscriptions
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ListUsers returns a page of users ordered by creation time
func (s *UserService) ListUsers(page, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// IsSubscribed reports whether follower is subscribed to author.
// Anonymous callers (uuid.Nil) are never subscribed.
func (s *UserService) IsSubscribed(authorID, followerID uuid.UUID) bool {
	if followerID == uuid.Nil {
		return false
	}
	var count int64
	s.db.Model(&models.Follow{}).
		Where("author_id = ? AND follower_id = ?", authorID, followerID).
		Count(&count)
	return count > 0
}

// Subscribe creates a follow edge from follower to author. The duplicate
// check is the unique index on (author_id, follower_id); a violation is
// reported as ErrAlreadyFollowing.
func (s *UserService) Subscribe(followerID, authorID uuid.UUID) (*models.User, error) {
	author, err := s.GetUser(authorID)
	if err != nil {
		return nil, err
	}
	if authorID == followerID {
		return nil, ErrSelfFollow
	}

	follow := models.Follow{AuthorID: authorID, FollowerID: followerID}
	if err := s.db.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	return author, nil
}

// Unsubscribe removes the follow edge, failing when none exists
func (s *UserService) Unsubscribe(followerID, authorID uuid.UUID) error {
	if _, err := s.GetUser(authorID); err != nil {
		return err
	}

	result := s.db.Where("author_id = ? AND follower_id = ?", authorID, followerID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Subscriptions returns a page of authors the user follows
func (s *UserService) Subscriptions(followerID uuid.UUID, page, limit int) ([]models.User, int64, error) {
	base := s.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := base.Order("follows.created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error
	return authors, total, err
}

// AuthorRecipes returns up to limit of the author's newest recipes plus the
// author's total recipe count
func (s *UserService) AuthorRecipes(authorID uuid.UUID, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	query := s.db.Where("author_id = ?", authorID).Order("published_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}
