package network

import (
	"context"
	"errors"
	"strings"
	"time"

	"mbaymi-backend/internal/models"

	"gorm.io/gorm"
)

type ProfileInput struct {
	UserID      uint
	Description string
	Specialties []string
	IsPublic    bool
}

type ProfileView struct {
	ID             uint      `json:"id"`
	FarmID         uint      `json:"farm_id"`
	FarmName       string    `json:"farm_name"`
	FarmLocation   string    `json:"farm_location"`
	OwnerName      string    `json:"owner_name"`
	Description    string    `json:"description"`
	Specialties    []string  `json:"specialties"`
	IsPublic       bool      `json:"is_public"`
	TotalFollowers int       `json:"total_followers"`
	CreatedAt      time.Time `json:"created_at"`
}

type PublicFarm struct {
	FarmID      uint     `json:"farm_id"`
	FarmName    string   `json:"farm_name"`
	Location    string   `json:"location"`
	OwnerName   string   `json:"owner_name"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	Followers   int      `json:"followers"`
}

type PostInput struct {
	FarmID      uint
	UserID      uint
	CropID      *uint
	Title       string
	Description string
	PhotoURL    string
	PostType    models.PostType
}

type FarmVisibility struct {
	FarmID   uint   `json:"farm_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	IsPublic bool   `json:"is_public"`
}

type UserProfile struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone"`
	Region         string           `json:"region"`
	ProfileImage   string           `json:"profile_image"`
	TotalFarms     int              `json:"total_farms"`
	TotalFollowers int64            `json:"total_followers"`
	TotalFollowing int64            `json:"total_following"`
	FarmFollowers  int64            `json:"farm_followers"`
	TotalPosts     int64            `json:"total_posts"`
	Farms          []FarmVisibility `json:"farms"`
}

// SplitSpecialties turns the stored comma list into trimmed, non-empty entries.
func SplitSpecialties(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinSpecialties(items []string) string {
	return strings.Join(SplitSpecialties(strings.Join(items, ",")), ",")
}

// -------------------------
// Farm profiles
// -------------------------

func (s *Service) ownedFarm(db *gorm.DB, farmID, userID uint) (*models.Farm, error) {
	var farm models.Farm
	if err := db.Where("id = ? AND user_id = ?", farmID, userID).First(&farm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmNotFound
		}
		return nil, err
	}
	return &farm, nil
}

// CreateProfile publishes a profile for a farm owned by in.UserID. A farm has
// at most one profile. Follows recorded before the profile existed are counted.
func (s *Service) CreateProfile(ctx context.Context, farmID uint, in ProfileInput) (*models.FarmProfile, error) {
	var profile models.FarmProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedFarm(tx, farmID, in.UserID); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.FarmProfile{}).Where("farm_id = ?", farmID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrProfileExists
		}

		profile = models.FarmProfile{
			FarmID:      farmID,
			UserID:      in.UserID,
			Description: in.Description,
			Specialties: joinSpecialties(in.Specialties),
			IsPublic:    in.IsPublic,
		}
		return createProfile(tx, &profile)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	return &profile, nil
}

// createProfile seeds the follower counter from the existing farm follow edges.
func createProfile(tx *gorm.DB, profile *models.FarmProfile) error {
	var followers int64
	if err := tx.Model(&models.FarmFollowing{}).Where("farm_id = ?", profile.FarmID).Count(&followers).Error; err != nil {
		return err
	}
	profile.TotalFollowers = int(followers)
	return tx.Create(profile).Error
}

type profileRow struct {
	models.FarmProfile
	FarmName     string
	FarmLocation string
	OwnerName    string
}

// GetProfile returns the public profile of a farm.
func (s *Service) GetProfile(ctx context.Context, farmID uint) (*ProfileView, error) {
	var row profileRow
	err := s.db.WithContext(ctx).Table("farm_profiles").
		Select("farm_profiles.*, farms.name AS farm_name, farms.location AS farm_location, users.name AS owner_name").
		Joins("JOIN farms ON farms.id = farm_profiles.farm_id").
		Joins("LEFT JOIN users ON users.id = farms.user_id").
		Where("farm_profiles.farm_id = ? AND farm_profiles.is_public = ?", farmID, true).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileMissing
	}
	if err != nil {
		return nil, err
	}

	owner := row.OwnerName
	if owner == "" {
		owner = "Agriculteur"
	}
	return &ProfileView{
		ID:             row.ID,
		FarmID:         row.FarmID,
		FarmName:       row.FarmName,
		FarmLocation:   row.FarmLocation,
		OwnerName:      owner,
		Description:    row.Description,
		Specialties:    SplitSpecialties(row.Specialties),
		IsPublic:       row.IsPublic,
		TotalFollowers: row.TotalFollowers,
		CreatedAt:      row.CreatedAt,
	}, nil
}

type publicFarmRow struct {
	FarmID      uint
	FarmName    string
	Location    string
	OwnerName   string
	Description string
	Specialties string
	Followers   int
}

func (s *Service) publicFarms(q *gorm.DB) ([]PublicFarm, error) {
	var rows []publicFarmRow
	err := q.Table("farm_profiles").
		Select("farms.id AS farm_id, farms.name AS farm_name, farms.location, users.name AS owner_name, " +
			"farm_profiles.description, farm_profiles.specialties, farm_profiles.total_followers AS followers").
		Joins("JOIN farms ON farms.id = farm_profiles.farm_id").
		Joins("JOIN users ON users.id = farms.user_id").
		Where("farm_profiles.is_public = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PublicFarm, 0, len(rows))
	for _, r := range rows {
		out = append(out, PublicFarm{
			FarmID:      r.FarmID,
			FarmName:    r.FarmName,
			Location:    r.Location,
			OwnerName:   r.OwnerName,
			Description: r.Description,
			Specialties: SplitSpecialties(r.Specialties),
			Followers:   r.Followers,
		})
	}
	return out, nil
}

// SearchProfiles matches public farms by name or location (q) and by specialty,
// case-insensitively.
func (s *Service) SearchProfiles(ctx context.Context, q, specialty string) ([]PublicFarm, error) {
	dbq := s.db.WithContext(ctx)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("LOWER(farms.name) LIKE ? OR LOWER(farms.location) LIKE ?", like, like)
	}
	if specialty = strings.TrimSpace(specialty); specialty != "" {
		dbq = dbq.Where("LOWER(farm_profiles.specialties) LIKE ?", "%"+strings.ToLower(specialty)+"%")
	}
	return s.publicFarms(dbq.Order("farms.name ASC"))
}

// PublicFarms lists public farms, most recently published first.
func (s *Service) PublicFarms(ctx context.Context, skip, limit int) ([]PublicFarm, error) {
	return s.publicFarms(s.db.WithContext(ctx).
		Order("farm_profiles.created_at DESC").
		Offset(skip).Limit(limit))
}

// SetVisibility makes a farm public or private, creating an empty profile on
// first use.
func (s *Service) SetVisibility(ctx context.Context, userID, farmID uint, isPublic bool) (*models.FarmProfile, error) {
	var profile models.FarmProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedFarm(tx, farmID, userID); err != nil {
			return err
		}

		err := tx.Where("farm_id = ?", farmID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.FarmProfile{FarmID: farmID, UserID: userID, IsPublic: isPublic}
			return createProfile(tx, &profile)
		}
		if err != nil {
			return err
		}
		profile.IsPublic = isPublic
		return tx.Model(&profile).Update("is_public", isPublic).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// -------------------------
// Posts
// -------------------------

func (s *Service) CreatePost(ctx context.Context, in PostInput) (*models.FarmPost, error) {
	db := s.db.WithContext(ctx)
	if _, err := s.ownedFarm(db, in.FarmID, in.UserID); err != nil {
		return nil, err
	}
	if in.PostType == "" {
		in.PostType = models.PostCropUpdate
	}

	post := models.FarmPost{
		FarmID:      in.FarmID,
		UserID:      in.UserID,
		CropID:      in.CropID,
		Title:       in.Title,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		PostType:    in.PostType,
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) FarmPosts(ctx context.Context, farmID uint, skip, limit int) ([]FeedItem, error) {
	return s.posts(ctx, "farm_posts.farm_id = ?", farmID, skip, limit)
}

func (s *Service) UserPosts(ctx context.Context, userID uint, skip, limit int) ([]FeedItem, error) {
	return s.posts(ctx, "farm_posts.user_id = ?", userID, skip, limit)
}

// -------------------------
// User profile
// -------------------------

func (s *Service) UserProfile(ctx context.Context, userID uint) (*UserProfile, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var farms []FarmVisibility
	if err := db.Table("farms").
		Select("farms.id AS farm_id, farms.name, farms.location, COALESCE(farm_profiles.is_public, ?) AS is_public", false).
		Joins("LEFT JOIN farm_profiles ON farm_profiles.farm_id = farms.id").
		Where("farms.user_id = ?", userID).
		Order("farms.id ASC").
		Scan(&farms).Error; err != nil {
		return nil, err
	}

	p := &UserProfile{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Region:       user.Region,
		ProfileImage: user.ProfileImage,
		TotalFarms:   len(farms),
		Farms:        farms,
	}
	if p.Farms == nil {
		p.Farms = []FarmVisibility{}
	}

	if err := db.Model(&models.UserFollowing{}).Where("following_id = ?", userID).Count(&p.TotalFollowers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.UserFollowing{}).Where("follower_id = ?", userID).Count(&p.TotalFollowing).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FarmProfile{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_followers), 0)").Scan(&p.FarmFollowers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FarmPost{}).Where("user_id = ?", userID).Count(&p.TotalPosts).Error; err != nil {
		return nil, err
	}
	return p, nil
}
