// Package repositories provides the data access layer.
// It handles all database operations and data persistence logic.
package repositories

import (
	"log"
	"os"
	"time"

	"smartshop/internal/config"
	"smartshop/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// InitDB connects to PostgreSQL, configures the connection pool, runs
// migrations and seeds the catalog when it is empty.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "smartshop") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	// Only log warnings and errors, and ignore "record not found".
	db.Logger = logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Product{},
		&models.CartItem{},
		&models.CreditCard{},
		&models.Transaction{},
		&models.Order{},
	); err != nil {
		return err
	}

	return SeedProducts(db)
}

// SeedProducts inserts the fixed catalog once. The existence check keeps
// repeated startups from duplicating rows.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(seedCatalog()).Error
}

// ReseedProducts drops the current catalog and inserts the seed list again.
// Used by cmd/seed only.
func ReseedProducts(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
		return err
	}
	return db.Create(seedCatalog()).Error
}

func seedCatalog() []models.Product {
	return []models.Product{
		{Name: "Pampers Diapers (Pack of 40)", Price: 650, Img: "/images/diapers.png", Category: "baby"},
		{Name: "Baby Lotion (Himalaya, 200ml)", Price: 180, Img: "/images/babylotion.jpg", Category: "baby"},
		{Name: "Baby Shampoo (Johnson's, 100ml)", Price: 120, Img: "/images/babyshampoo.jpg", Category: "baby"},
		{Name: "Baby Soap (Dove, 4 pcs)", Price: 150, Img: "/images/babysoap.jpg", Category: "baby"},
		{Name: "Baby Powder (Johnson's, 200g)", Price: 160, Img: "/images/babypowder.jpg", Category: "baby"},
		{Name: "Baby Oil (Johnson's, 200ml)", Price: 140, Img: "/images/babyoil.jpg", Category: "baby"},
		{Name: "Feeding Bottle (Philips Avent, 250ml)", Price: 499, Img: "/images/feeding-bottle.jpg", Category: "baby"},
		{Name: "Baby Toothbrush (Pigeon Soft Grip)", Price: 120, Img: "/images/brush.jpg", Category: "baby"},
		{Name: "Baby Cream (Himalaya, 50g)", Price: 90, Img: "/images/babycream.jpg", Category: "baby"},
		{Name: "Baby Cloth Set", Price: 400, Img: "/images/babycloth.jpg", Category: "baby"},
		{Name: "Lipstick (Lakme, 4g)", Price: 350, Img: "/images/lipstick.jpg", Category: "beauty"},
		{Name: "Eyeliner (Maybelline, 3ml)", Price: 220, Img: "/images/eyeliner.jpg", Category: "beauty"},
		{Name: "Foundation (L'Oréal, 30ml)", Price: 450, Img: "/images/foundation.jpg", Category: "beauty"},
		{Name: "Compact Powder (Lakme, 9g)", Price: 250, Img: "/images/compact.jpg", Category: "beauty"},
		{Name: "Nail Polish (Colorbar, 6ml)", Price: 180, Img: "/images/nailpolish.jpg", Category: "beauty"},
		{Name: "Makeup Brush Set", Price: 300, Img: "/images/brushset.jpg", Category: "beauty"},
		{Name: "Perfume (Fogg, 100ml)", Price: 320, Img: "/images/perfume.jpg", Category: "beauty"},
		{Name: "Face Mask (Sheet, Pack of 3)", Price: 150, Img: "/images/facemask.jpg", Category: "beauty"},
		{Name: "Makeup Remover (Garnier, 125ml)", Price: 190, Img: "/images/remover.jpg", Category: "beauty"},
		{Name: "Kajal (Himalaya, 1.2g)", Price: 120, Img: "/images/kajal.jpg", Category: "beauty"},
	}
}
