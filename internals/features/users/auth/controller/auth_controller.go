package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymbook_backend/internals/configs"
	d "gymbook_backend/internals/features/users/auth/dto"
	userModel "gymbook_backend/internals/features/users/user/model"
	helper "gymbook_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

/* =========================
   Register
   ========================= */

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req d.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(ac.Validate); err != nil {
		return helper.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing userModel.UserModel
	if err := ac.DB.First(&existing, "user_email = ?", email).Error; err == nil {
		return helper.Error(c, fiber.StatusConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    email,
		UserPassword: string(hashed),
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registration successful", fiber.Map{
		"user_id":   user.UserID,
		"user_name": user.UserName,
		"email":     user.UserEmail,
	})
}

/* =========================
   Login
   ========================= */

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req d.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(ac.Validate); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.UserIsActive {
		return helper.Error(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := generateAccessToken(&user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	// Cookie fallback untuk browser client
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.Success(c, "Login successful", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"user_id":   user.UserID,
			"user_name": user.UserName,
			"role":      user.UserRole,
		},
	})
}

func generateAccessToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

/* =========================
   Logout
   ========================= */

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.Success(c, "Logout successful", nil)
}

/* =========================
   Me
   ========================= */

func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"user_id":                   user.UserID,
			"user_name":                 user.UserName,
			"email":                     user.UserEmail,
			"role":                      user.UserRole,
			"user_weekly_booking_limit": user.UserWeeklyBookingLimit,
		},
	})
}
