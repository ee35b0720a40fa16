// Command seed populates the database with demo content.
package main

import (
	"flag"
	"log"

	"verdant/internal/config"
	"verdant/internal/database"
	"verdant/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 30, "Number of blog posts to create")
	numProjects := flag.Int("projects", 10, "Number of projects to create")
	shouldClean := flag.Bool("clean", false, "Remove existing content before seeding")
	flag.Parse()

	log.Printf("Seeding: %d users, %d posts, %d projects, clean=%v",
		*numUsers, *numPosts, *numProjects, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(db, cfg, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumProjects: *numProjects,
		ShouldClean: *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All demo accounts use the password %q.", seed.DemoPassword)
}
