package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	seedDir := flag.String("dir", "seed", "directory containing seed SQL files")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedFiles := []string{
		"users.sql",
		"senders.sql",
		"customers.sql",
		"campaigns.sql",
	}

	for _, file := range seedFiles {
		path := filepath.Join(*seedDir, file)
		content, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", path, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", path, err)
		}
		fmt.Printf("seeded: %s\n", path)
	}

	fmt.Println("database seeding completed")
}
