// Package network implements the farm social network: farm profiles, posts,
// user and legacy farm follow edges, and the feeds built from them.
package network

import (
	"context"
	"errors"
	"time"

	"mbaymi-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrUserNotFound   = errors.New("user not found")
	ErrFarmNotFound   = errors.New("farm not found")
	ErrProfileExists  = errors.New("farm profile already exists")
	ErrProfileMissing = errors.New("farm profile not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type UserSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Region       string    `json:"region"`
	ProfileImage string    `json:"profile_image"`
	FollowedAt   time.Time `json:"followed_at"`
}

type FeedItem struct {
	ID          uint            `json:"id"`
	FarmID      uint            `json:"farm_id"`
	FarmName    string          `json:"farm_name"`
	OwnerID     uint            `json:"owner_id"`
	OwnerName   string          `json:"owner_name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	PhotoURL    string          `json:"photo_url"`
	PostType    models.PostType `json:"post_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

type FarmSummary struct {
	FarmID   uint   `json:"farm_id"`
	FarmName string `json:"farm_name"`
	Location string `json:"location"`
}

// -------------------------
// User follow edges
// -------------------------

// Follow records that followerID follows followeeID. Following twice is not an
// error; created reports whether a new edge was stored.
func (s *Service) Follow(ctx context.Context, followerID, followeeID uint) (created bool, err error) {
	if followerID == followeeID {
		return false, ErrSelfFollow
	}
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.User{}).Where("id IN ?", []uint{followerID, followeeID}).Count(&n).Error; err != nil {
		return false, err
	}
	if n != 2 {
		return false, ErrUserNotFound
	}

	edge := models.UserFollowing{FollowerID: followerID, FollowingID: followeeID}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unfollow removes the edge if present. Removing a missing edge succeeds.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID uint) (removed bool, err error) {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followeeID).
		Delete(&models.UserFollowing{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Service) followeeIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.UserFollowing{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// Feed returns posts from farms owned by the users userID follows, newest
// first. Posts with equal timestamps come back in storage order.
func (s *Service) Feed(ctx context.Context, userID uint, skip, limit int) ([]FeedItem, error) {
	ids, err := s.followeeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []FeedItem{}, nil
	}
	return s.posts(ctx, "farms.user_id IN ?", ids, skip, limit)
}

func (s *Service) posts(ctx context.Context, cond string, arg any, skip, limit int) ([]FeedItem, error) {
	items := []FeedItem{}
	err := s.db.WithContext(ctx).Table("farm_posts").
		Select("farm_posts.id, farm_posts.farm_id, farms.name AS farm_name, " +
			"users.id AS owner_id, users.name AS owner_name, farm_posts.title, " +
			"farm_posts.description, farm_posts.photo_url, farm_posts.post_type, farm_posts.created_at").
		Joins("JOIN farms ON farms.id = farm_posts.farm_id").
		Joins("JOIN users ON users.id = farms.user_id").
		Where(cond, arg).
		Order("farm_posts.created_at DESC").
		Offset(skip).Limit(limit).
		Scan(&items).Error
	return items, err
}

// Following lists the users userID follows.
func (s *Service) Following(ctx context.Context, userID uint) ([]UserSummary, error) {
	return s.edgeUsers(ctx, "user_following.following_id", "user_following.follower_id", userID)
}

// Followers lists the users following userID.
func (s *Service) Followers(ctx context.Context, userID uint) ([]UserSummary, error) {
	return s.edgeUsers(ctx, "user_following.follower_id", "user_following.following_id", userID)
}

func (s *Service) edgeUsers(ctx context.Context, joinCol, filterCol string, userID uint) ([]UserSummary, error) {
	out := []UserSummary{}
	err := s.db.WithContext(ctx).Table("user_following").
		Select("users.id, users.name, users.region, users.profile_image, user_following.created_at AS followed_at").
		Joins("JOIN users ON users.id = "+joinCol).
		Where(filterCol+" = ?", userID).
		Order("user_following.created_at DESC").
		Scan(&out).Error
	return out, err
}

// -------------------------
// Legacy farm follow edges
// -------------------------

// FollowFarm stores a farm follow edge and bumps the profile's follower counter
// in the same transaction.
func (s *Service) FollowFarm(ctx context.Context, userID, farmID uint) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Farm{}).Where("id = ?", farmID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrFarmNotFound
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrUserNotFound
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.FarmFollowing{FollowerID: userID, FarmID: farmID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true

		return tx.Model(&models.FarmProfile{}).
			Where("farm_id = ?", farmID).
			UpdateColumn("total_followers", gorm.Expr("total_followers + 1")).Error
	})
	return created, err
}

// UnfollowFarm removes the edge and decrements the counter, never below zero.
func (s *Service) UnfollowFarm(ctx context.Context, userID, farmID uint) (removed bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND farm_id = ?", userID, farmID).
			Delete(&models.FarmFollowing{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true

		return tx.Model(&models.FarmProfile{}).
			Where("farm_id = ? AND total_followers > 0", farmID).
			UpdateColumn("total_followers", gorm.Expr("total_followers - 1")).Error
	})
	return removed, err
}

// FarmFeed returns posts of the farms userID follows through the legacy edges.
func (s *Service) FarmFeed(ctx context.Context, userID uint, skip, limit int) ([]FeedItem, error) {
	var farmIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.FarmFollowing{}).
		Where("follower_id = ?", userID).
		Pluck("farm_id", &farmIDs).Error; err != nil {
		return nil, err
	}
	if len(farmIDs) == 0 {
		return []FeedItem{}, nil
	}
	return s.posts(ctx, "farm_posts.farm_id IN ?", farmIDs, skip, limit)
}

func (s *Service) FollowedFarms(ctx context.Context, userID uint) ([]FarmSummary, error) {
	out := []FarmSummary{}
	err := s.db.WithContext(ctx).Table("farm_following").
		Select("farms.id AS farm_id, farms.name AS farm_name, farms.location").
		Joins("JOIN farms ON farms.id = farm_following.farm_id").
		Where("farm_following.follower_id = ?", userID).
		Order("farm_following.created_at DESC").
		Scan(&out).Error
	return out, err
}
