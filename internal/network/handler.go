package network

import (
	"errors"
	"strings"

	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateProfileRequest struct {
	UserID      uint     `json:"user_id" validate:"required"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	IsPublic    *bool    `json:"is_public"`
}

type ProfileResponse struct {
	ID             uint     `json:"id"`
	FarmID         uint     `json:"farm_id"`
	Description    string   `json:"description"`
	Specialties    []string `json:"specialties"`
	IsPublic       bool     `json:"is_public"`
	TotalFollowers int      `json:"total_followers"`
}

type CreatePostRequest struct {
	FarmID      uint   `json:"farm_id" validate:"required"`
	UserID      uint   `json:"user_id" validate:"required"`
	CropID      *uint  `json:"crop_id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	PostType    string `json:"post_type" validate:"omitempty,oneof=crop_update harvest_result problem_report tip"`
}

type PostResponse struct {
	ID        uint            `json:"id"`
	FarmID    uint            `json:"farm_id"`
	Title     string          `json:"title"`
	PostType  models.PostType `json:"post_type"`
	CreatedAt string          `json:"created_at"`
}

type PostsResponse struct {
	Count int        `json:"count"`
	Posts []FeedItem `json:"posts"`
}

type FarmsResponse[T any] struct {
	Count int `json:"count"`
	Farms []T `json:"farms"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// toHTTP maps service errors to API errors.
func toHTTP(err error) error {
	switch {
	case errors.Is(err, ErrSelfFollow):
		return fiber.NewError(fiber.StatusBadRequest, "Vous ne pouvez pas vous suivre vous-même")
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Utilisateur non trouvé")
	case errors.Is(err, ErrFarmNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Ferme non trouvée")
	case errors.Is(err, ErrProfileExists):
		return fiber.NewError(fiber.StatusBadRequest, "Profil déjà créé pour cette ferme")
	case errors.Is(err, ErrProfileMissing):
		return fiber.NewError(fiber.StatusNotFound, "Profil non trouvé")
	}
	return err
}

// -------------------------
// Farm profiles
// -------------------------

// POST /api/farm-network/profiles/:farm_id
func CreateProfileHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		var body CreateProfileRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		isPublic := true
		if body.IsPublic != nil {
			isPublic = *body.IsPublic
		}

		profile, err := svc.CreateProfile(c.UserContext(), farmID, ProfileInput{
			UserID:      body.UserID,
			Description: strings.TrimSpace(body.Description),
			Specialties: body.Specialties,
			IsPublic:    isPublic,
		})
		if err != nil {
			return toHTTP(err)
		}

		return c.Status(fiber.StatusCreated).JSON(ProfileResponse{
			ID:             profile.ID,
			FarmID:         profile.FarmID,
			Description:    profile.Description,
			Specialties:    SplitSpecialties(profile.Specialties),
			IsPublic:       profile.IsPublic,
			TotalFollowers: profile.TotalFollowers,
		})
	}
}

// GET /api/farm-network/profiles/:farm_id
func GetProfileHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		view, err := svc.GetProfile(c.UserContext(), farmID)
		if err != nil {
			return toHTTP(err)
		}
		return c.JSON(view)
	}
}

// GET /api/farm-network/profiles/search?q=thies&specialty=tomate
func SearchProfilesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farms, err := svc.SearchProfiles(c.UserContext(), c.Query("q"), c.Query("specialty"))
		if err != nil {
			return err
		}
		return c.JSON(FarmsResponse[PublicFarm]{Count: len(farms), Farms: farms})
	}
}

// GET /api/farm-network/public-farms?skip=0&limit=10
func PublicFarmsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}
		farms, err := svc.PublicFarms(c.UserContext(), skip, limit)
		if err != nil {
			return err
		}
		return c.JSON(FarmsResponse[PublicFarm]{Count: len(farms), Farms: farms})
	}
}

// -------------------------
// Posts
// -------------------------

// POST /api/farm-network/posts
func CreatePostHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePostRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		post, err := svc.CreatePost(c.UserContext(), PostInput{
			FarmID:      body.FarmID,
			UserID:      body.UserID,
			CropID:      body.CropID,
			Title:       strings.TrimSpace(body.Title),
			Description: body.Description,
			PhotoURL:    body.PhotoURL,
			PostType:    models.PostType(body.PostType),
		})
		if err != nil {
			return toHTTP(err)
		}

		return c.Status(fiber.StatusCreated).JSON(PostResponse{
			ID:        post.ID,
			FarmID:    post.FarmID,
			Title:     post.Title,
			PostType:  post.PostType,
			CreatedAt: post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
}

// GET /api/farm-network/posts/farm/:farm_id
func FarmPostsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}
		posts, err := svc.FarmPosts(c.UserContext(), farmID, skip, limit)
		if err != nil {
			return err
		}
		return c.JSON(PostsResponse{Count: len(posts), Posts: posts})
	}
}

// -------------------------
// Legacy farm follows
// -------------------------

// GET /api/farm-network/feed?user_id=1
func FarmFeedHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.QueryID(c, "user_id")
		if err != nil {
			return err
		}
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}
		posts, err := svc.FarmFeed(c.UserContext(), userID, skip, limit)
		if err != nil {
			return err
		}
		return c.JSON(PostsResponse{Count: len(posts), Posts: posts})
	}
}

// POST /api/farm-network/follow/:farm_id?user_id=1
func FollowFarmHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		userID, err := request.QueryID(c, "user_id")
		if err != nil {
			return err
		}

		created, err := svc.FollowFarm(c.UserContext(), userID, farmID)
		if err != nil {
			return toHTTP(err)
		}
		if !created {
			return c.JSON(MessageResponse{Message: "Vous suivez déjà cette ferme"})
		}
		return c.JSON(MessageResponse{Message: "Ferme suivie"})
	}
}

// DELETE /api/farm-network/follow/:farm_id?user_id=1
func UnfollowFarmHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		userID, err := request.QueryID(c, "user_id")
		if err != nil {
			return err
		}

		if _, err := svc.UnfollowFarm(c.UserContext(), userID, farmID); err != nil {
			return err
		}
		return c.JSON(MessageResponse{Message: "Ferme non suivie"})
	}
}

// GET /api/farm-network/following/:user_id
func FollowedFarmsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "user_id")
		if err != nil {
			return err
		}
		farms, err := svc.FollowedFarms(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return c.JSON(FarmsResponse[FarmSummary]{Count: len(farms), Farms: farms})
	}
}
