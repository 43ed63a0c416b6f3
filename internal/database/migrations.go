package database

import (
	"errors"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	)
}

// Seed inserts the reference categories and suppliers unless a row with the
// same name already exists.
func Seed(db *gorm.DB) error {
	now := time.Now().UTC()

	categories := []models.Category{
		{Name: "Electronics", Description: "Electronic devices and components"},
		{Name: "Clothing", Description: "Apparel and accessories"},
		{Name: "Books", Description: "Books and publications"},
	}
	for _, c := range categories {
		var existing models.Category
		if err := db.Where("name = ?", c.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			c.CreatedDate, c.UpdatedDate = now, now
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	suppliers := []models.Supplier{
		{Name: "Tech Supply Co", ContactPerson: "John Doe", Phone: "123-456-7890", Email: "john@techsupply.com"},
		{Name: "Fashion World", ContactPerson: "Jane Smith", Phone: "098-765-4321", Email: "jane@fashionworld.com"},
	}
	for _, s := range suppliers {
		var existing models.Supplier
		if err := db.Where("name = ?", s.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			s.CreatedDate, s.UpdatedDate = now, now
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
