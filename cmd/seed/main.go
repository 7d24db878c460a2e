package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/realtora/realtor-api/config"
	"github.com/realtora/realtor-api/pkg/helpers"
)

// Seeds a demo realtor, a demo buyer, and one listing with two photos.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	realtorID := seedUser(db, "Dana Reyes", "dana.realtor@example.com", "+15550100001", hash, "REALTOR")
	buyerID := seedUser(db, "Sam Ortiz", "sam.buyer@example.com", "+15550100002", hash, "BUYER")
	fmt.Printf("seeded users: realtor=%d buyer=%d password=%s\n", realtorID, buyerID, password)

	var homeID int64
	err = db.QueryRow(`
		INSERT INTO homes (address, city, price, property_type, number_of_bedrooms, number_of_bathrooms, land_size, realtor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, "742 Evergreen Terrace", "Springfield", 450000, "RESIDENTIAL", 4, 2, 6000, realtorID).Scan(&homeID)
	if err != nil {
		log.Fatalf("failed to seed home: %v", err)
	}

	for _, url := range []string{
		"https://storage.googleapis.com/realtora-demo/listings/front.jpg",
		"https://storage.googleapis.com/realtora-demo/listings/kitchen.jpg",
	} {
		if _, err := db.Exec(`INSERT INTO images (url, home_id) VALUES ($1, $2)`, url, homeID); err != nil {
			log.Fatalf("failed to seed image: %v", err)
		}
	}
	fmt.Printf("seeded home: id=%d\n", homeID)
}

func seedUser(db *sql.DB, name, email, phone, hash, userType string) int64 {
	var id int64
	err := db.QueryRow(`
		INSERT INTO users (name, email, phone, password_hash, user_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, phone, hash, userType).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
