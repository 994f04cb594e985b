package auth

import (
	"errors"
	"strings"
	"time"

	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=farmer livestock_breeder buyer seller"`
	Region   string  `json:"region" validate:"required"`
	Village  string  `json:"village"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	Region    string    `json:"region"`
	Village   string    `json:"village"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Message      string `json:"message"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Region:    u.Region,
		Village:   u.Village,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// POST /api/auth/register
func RegisterHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)
		if body.Phone != nil {
			p := strings.TrimSpace(*body.Phone)
			body.Phone = &p
			if p == "" {
				body.Phone = nil
			}
		}

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}
		if body.Phone != nil {
			if err := db.Model(&models.User{}).Where("phone = ?", *body.Phone).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Phone already registered")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			PasswordHash: string(hash),
			Role:         models.UserRole(body.Role),
			Region:       body.Region,
			Village:      body.Village,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
			}
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(NewUserResponse(&user))
	}
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
			}
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "Account disabled")
		}

		access, err := GenerateToken(cfg.JWTSecret, &user, AccessToken, cfg.AccessTokenTTL)
		if err != nil {
			return err
		}
		refresh, err := GenerateToken(cfg.JWTSecret, &user, RefreshToken, cfg.RefreshTokenTTL)
		if err != nil {
			return err
		}

		return c.JSON(LoginResponse{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         string(user.Role),
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "bearer",
			Message:      "Login successful",
		})
	}
}

// POST /api/auth/refresh
func RefreshHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RefreshRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		claims, err := ParseToken(cfg.JWTSecret, body.RefreshToken, RefreshToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
			}
			return err
		}

		access, err := GenerateToken(cfg.JWTSecret, &user, AccessToken, cfg.AccessTokenTTL)
		if err != nil {
			return err
		}
		return c.JSON(RefreshResponse{AccessToken: access, TokenType: "bearer"})
	}
}

// GET /api/auth/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return httperr.NotFound(err, "User not found")
		}
		return c.JSON(NewUserResponse(&user))
	}
}
