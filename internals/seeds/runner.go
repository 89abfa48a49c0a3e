package seeds

import (
	"gorm.io/gorm"

	users "gymbook_backend/internals/seeds/users"
)

// RunAllSeeds dijalankan sekali saat boot bila RUN_SEEDS=true.
func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
