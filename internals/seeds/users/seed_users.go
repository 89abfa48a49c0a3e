package users

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymbook_backend/internals/features/users/user/model"
)

type UserSeed struct {
	UserName           string `json:"user_name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	WeeklyBookingLimit int    `json:"weekly_booking_limit"`
}

// SeedUsersFromJSON memuat akun awal (admin + member contoh) dari file JSON.
// User yang emailnya sudah ada dilewati, jadi aman dijalankan berulang.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("[SEED] Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[SEED] Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("[SEED] Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		var existing model.UserModel
		if err := db.Where("user_email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("[SEED] User '%s' sudah ada, dilewati", data.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[SEED] Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		limit := data.WeeklyBookingLimit
		if limit < 1 || limit > 10 {
			limit = 3
		}
		role := data.Role
		if role == "" {
			role = "user"
		}

		newUser := model.UserModel{
			UserID:                 uuid.New(),
			UserName:               data.UserName,
			UserEmail:              data.Email,
			UserPassword:           string(hashed),
			UserRole:               role,
			UserWeeklyBookingLimit: limit,
			UserIsActive:           true,
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("[SEED] Gagal insert user '%s': %v", data.Email, err)
		} else {
			log.Printf("[SEED] Berhasil insert user '%s'", data.Email)
		}
	}
}
