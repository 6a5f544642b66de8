package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	uploadController "github.com/PelusheLD/FV-Bodegon/controllers/upload"
	"github.com/PelusheLD/FV-Bodegon/middleware"
	"github.com/PelusheLD/FV-Bodegon/models"
	"github.com/PelusheLD/FV-Bodegon/routes"
)

func main() {
	log.Println("Starting bodega API...")

	_ = godotenv.Load()

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.AdminUser{},
		&models.SiteSettings{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := seedDefaults(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	middleware.InitSessionStore()

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // 32 MB

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	uploadsDir := uploadController.UploadDir()
	r.Static("/uploads", uploadsDir)

	routes.SetupRoutes(r, db)

	// Nightly image backup at 2 AM, keeping 4 days
	if backupDir := os.Getenv("BACKUP_DIR"); backupDir != "" {
		go startDailyBackupAtFixedTime(uploadsDir, backupDir, 4*24*time.Hour, 2, 0)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// seedDefaults creates the initial superadmin and the site settings row
// on a fresh database.
func seedDefaults(db *gorm.DB) error {
	var adminCount int64
	if err := db.Model(&models.AdminUser{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.AdminUser{
			Username: "admin",
			Email:    "admin@fvbodegones.com",
			Password: string(hash),
			Role:     models.RoleSuperAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Created default admin user (username: admin)")
	}

	var settingsCount int64
	if err := db.Model(&models.SiteSettings{}).Count(&settingsCount).Error; err != nil {
		return err
	}
	if settingsCount == 0 {
		settings := models.SiteSettings{
			SiteName:            "FV BODEGONES",
			SiteDescription:     "Tu bodega de confianza para productos de consumo diario",
			ContactPhone:        "+1 (555) 123-4567",
			ContactEmail:        "contacto@fvbodegones.com",
			ContactAddress:      "Calle Principal #123, Ciudad",
			FacebookURL:         "#",
			InstagramURL:        "#",
			TwitterURL:          "#",
			PaymentBank:         "Banplus",
			PaymentCI:           "J-503280280",
			PaymentPhone:        "04245775917",
			PaymentInstructions: "IMPORTANTE: Indicar número de teléfono, banco, cédula titular del pago móvil para confirmar.",
			EnableCarousel1:     true,
			EnableCarousel2:     true,
			EnableCarousel3:     true,
		}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
		log.Println("Created default site settings")
	}

	return nil
}

// startDailyBackupAtFixedTime backs up images daily at a fixed hour and
// removes old backups
func startDailyBackupAtFixedTime(srcDir, backupDir string, retention time.Duration, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("Next image backup scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyDir(srcDir, destDir); err != nil {
			log.Printf("Failed to back up images: %v", err)
		} else {
			log.Printf("Images backed up to %s", destDir)
		}

		cleanupOldBackups(backupDir, retention)
	}
}

// copyDir recursively copies a folder
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyFile copies a single file
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanupOldBackups removes backup folders older than the retention window
func cleanupOldBackups(backupDir string, retention time.Duration) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		log.Printf("Failed to read backup directory: %v", err)
		return
	}

	cutoff := time.Now().Add(-retention)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(backupDir, entry.Name())
		info, err := os.Stat(folderPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				log.Printf("Failed to remove old backup %s: %v", folderPath, err)
			}
		}
	}
}
