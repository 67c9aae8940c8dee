package handlers

import (
	"errors"
	"time"

	config "github.com/almusafir/travel_booking/configs"
	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/models"
	"github.com/almusafir/travel_booking/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

var otpStore services.OtpStore

func InitAuthHandlers(store services.OtpStore) {
	otpStore = store
}

type RegisterRequest struct {
	FullName     string  `json:"full_name" validate:"required,min=3"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	MobileNumber *string `json:"mobile_number,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestOtpRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,min=7"`
}

type VerifyOtpRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,min=7"`
	Otp          string `json:"otp" validate:"required,len=6"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tenant := tenantID(c)
	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("tenant_id = ? AND email = ?", tenant, req.Email).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	newUser := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     string(hashedPassword),
		MobileNumber: req.MobileNumber,
		Role:         "customer",
		TenantID:     tenant,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        newUser.ID.String(),
		FullName:  newUser.FullName,
		Email:     newUser.Email,
		Role:      newUser.Role,
		CreatedAt: newUser.CreatedAt,
	})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tenant := tenantID(c)
	var user models.User
	err := database.DB.Where("tenant_id = ? AND email = ?", tenant, req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"sub":     user.Email,
		"email":   user.Email,
		"user_id": user.ID.String(),
		"role":    user.Role,
		"tenant":  user.TenantID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign token"})
	}

	return c.JSON(fiber.Map{"token": signed, "role": user.Role})
}

// RequestOtp issues a six-digit code for a mobile number. The code is echoed
// in the response only when OTP_EXPOSE_IN_RESPONSE is enabled (demo setups
// without an SMS provider).
func RequestOtp(c *fiber.Ctx) error {
	var req RequestOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	code, expiresAt, err := otpStore.GenerateOtp(tenantID(c), req.MobileNumber)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate OTP"})
	}

	resp := fiber.Map{"expires_at": expiresAt}
	if config.Config("OTP_EXPOSE_IN_RESPONSE") == "true" {
		resp["otp"] = code
	}
	return c.JSON(resp)
}

func VerifyOtp(c *fiber.Ctx) error {
	var req VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := otpStore.VerifyOtp(tenantID(c), req.MobileNumber, req.Otp)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"verification_token": token})
}
