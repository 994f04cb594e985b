package network

import (
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
)

type FollowResponse struct {
	FollowerID  uint   `json:"follower_id"`
	FollowingID uint   `json:"following_id"`
	Following   bool   `json:"following"`
	Message     string `json:"message"`
}

type UsersResponse struct {
	Count int           `json:"count"`
	Users []UserSummary `json:"users"`
}

type VisibilityResponse struct {
	FarmID   uint   `json:"farm_id"`
	IsPublic bool   `json:"is_public"`
	Message  string `json:"message"`
}

// GET /api/users/:id/profile
func UserProfileHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		profile, err := svc.UserProfile(c.UserContext(), userID)
		if err != nil {
			return toHTTP(err)
		}
		return c.JSON(profile)
	}
}

// GET /api/users/:id/posts?skip=0&limit=20
func UserPostsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}
		posts, err := svc.UserPosts(c.UserContext(), userID, skip, limit)
		if err != nil {
			return err
		}
		return c.JSON(PostsResponse{Count: len(posts), Posts: posts})
	}
}

// PUT /api/users/:id/farms/:farm_id/visibility?is_public=true
func SetVisibilityHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		farmID, err := request.ParamID(c, "farm_id")
		if err != nil {
			return err
		}
		if c.Query("is_public") == "" {
			return fiber.NewError(fiber.StatusBadRequest, "is_public is required")
		}
		isPublic := c.QueryBool("is_public")

		profile, err := svc.SetVisibility(c.UserContext(), userID, farmID, isPublic)
		if err != nil {
			return toHTTP(err)
		}

		msg := "Ferme rendue privée"
		if profile.IsPublic {
			msg = "Ferme rendue publique"
		}
		return c.JSON(VisibilityResponse{FarmID: farmID, IsPublic: profile.IsPublic, Message: msg})
	}
}

// POST /api/users/:id/follow?follower_id=2
func FollowUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		followeeID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		followerID, err := request.QueryID(c, "follower_id")
		if err != nil {
			return err
		}

		created, err := svc.Follow(c.UserContext(), followerID, followeeID)
		if err != nil {
			return toHTTP(err)
		}

		resp := FollowResponse{FollowerID: followerID, FollowingID: followeeID, Following: true, Message: "Utilisateur suivi"}
		if !created {
			resp.Message = "Vous suivez déjà cet utilisateur"
		}
		return c.JSON(resp)
	}
}

// DELETE /api/users/:id/follow?follower_id=2
func UnfollowUserHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		followeeID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		followerID, err := request.QueryID(c, "follower_id")
		if err != nil {
			return err
		}

		if _, err := svc.Unfollow(c.UserContext(), followerID, followeeID); err != nil {
			return err
		}
		return c.JSON(FollowResponse{FollowerID: followerID, FollowingID: followeeID, Following: false, Message: "Utilisateur non suivi"})
	}
}

// GET /api/users/:id/following
func FollowingHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		users, err := svc.Following(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return c.JSON(UsersResponse{Count: len(users), Users: users})
	}
}

// GET /api/users/:id/followers
func FollowersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		users, err := svc.Followers(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return c.JSON(UsersResponse{Count: len(users), Users: users})
	}
}

// GET /api/users/:id/feed?skip=0&limit=20
func UserFeedHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		skip, limit, err := request.Page(c)
		if err != nil {
			return err
		}
		posts, err := svc.Feed(c.UserContext(), userID, skip, limit)
		if err != nil {
			return err
		}
		return c.JSON(PostsResponse{Count: len(posts), Posts: posts})
	}
}
