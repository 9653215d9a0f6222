package configs

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/khoalevan2535/Goldenbamboo-sub001/entity"
)

// SeedAdmin creates the first manager account from env.
func SeedAdmin() error {
	db := DB()
	username := getEnv("ADMIN_USERNAME", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if username == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Account{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", username)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.Account{
		Username: username,
		Password: string(hash),
		FullName: "Seeded Manager",
		Role:     "manager",
	}
	return db.Create(&admin).Error
}

// SeedCatalog loads a starter branch with tables, dishes, combos and one
// running discount so a fresh install is usable right away. The real catalog
// is managed by the menu service.
func SeedCatalog() error {
	db := DB()

	var branch entity.Branch
	db.FirstOrCreate(&branch, entity.Branch{Name: "Golden Bamboo - District 1"})

	for n := 1; n <= 10; n++ {
		db.FirstOrCreate(&entity.Table{}, entity.Table{
			Number:      n,
			Status:      entity.TableAvailable,
			CapacityMin: 2,
			CapacityMax: 6,
			Area:        "main hall",
			BranchID:    branch.ID,
		})
	}

	var pho, rolls entity.Dish
	db.FirstOrCreate(&pho, entity.Dish{Name: "Pho Bo", BasePrice: 100000, BranchID: branch.ID})
	db.FirstOrCreate(&rolls, entity.Dish{Name: "Spring Rolls", BasePrice: 60000, BranchID: branch.ID})
	db.FirstOrCreate(&entity.Combo{}, entity.Combo{Name: "Family Set", BasePrice: 350000, BranchID: branch.ID})

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now().Add(30 * 24 * time.Hour)
	db.FirstOrCreate(&entity.Discount{}, entity.Discount{
		Detail:   "Pho opening week",
		NewPrice: 80000,
		StartAt:  &start,
		EndAt:    &end,
		Status:   entity.DiscountActive,
		DishID:   &pho.ID,
		BranchID: branch.ID,
	})

	log.Println("catalog seeded")
	return nil
}
