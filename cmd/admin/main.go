// Command admin is the operations CLI: seed the first admin account,
// create staff and reset staff passwords without going through the API.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/service"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_NAME", "returnhub"),
		getenv("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Staff{}, &models.User{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// No redis needed for the admin CLI.
	staffSvc := service.NewStaffService(storage.NewService(db, nil))

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "seed-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin seed-admin <name> <email> <password>")
			os.Exit(1)
		}
		staff, err := staffSvc.EnsureAdmin(os.Args[2], os.Args[3], os.Args[4])
		if err != nil {
			log.Fatalf("Error seeding admin: %v", err)
		}
		fmt.Printf("Admin %q ready (id %d).\n", staff.Name, staff.ID)

	case "create-staff":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-staff <name> <email> <password>")
			os.Exit(1)
		}
		staff, err := staffSvc.Create(service.CreateStaffRequest{
			Name:     os.Args[2],
			Email:    os.Args[3],
			Password: os.Args[4],
			Role:     models.RoleStaff,
		})
		if err != nil {
			log.Fatalf("Error creating staff: %v", err)
		}
		fmt.Printf("Staff %q created (id %d).\n", staff.Name, staff.ID)

	case "reset-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin reset-password <staff_id> <password>")
			os.Exit(1)
		}
		id, err := strconv.Atoi(os.Args[2])
		if err != nil || id < 1 {
			fmt.Println("Invalid staff id. Please provide a positive integer.")
			os.Exit(1)
		}
		if err := staffSvc.ResetPassword(uint(id), os.Args[3]); err != nil {
			log.Fatalf("Error resetting password: %v", err)
		}
		fmt.Printf("Password for staff %d has been reset.\n", id)

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <seed-admin|create-staff|reset-password> [args]")
	os.Exit(1)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
