package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/vertexlabs/go-auth-boilerplate/config"
	"github.com/vertexlabs/go-auth-boilerplate/internal/application"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/infrastructure/graphdb"
	"github.com/vertexlabs/go-auth-boilerplate/pkg/helpers"
)

// Seeds a demo person so the login form works out of the box.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.Neo4jURI == "" {
		log.Fatal("NEO4J_URI must be set to seed")
	}

	ctx := context.Background()
	store, err := graphdb.New(ctx, graphdb.Config{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		log.Fatalf("failed to connect to neo4j: %v", err)
	}
	defer func() { _ = store.Close(ctx) }()

	people := application.NewPersonStore(store)

	email := "demo@example.com"
	password := "password123"

	existing, err := people.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	if existing != nil {
		fmt.Printf("person already seeded: id=%s email=%s\n", existing.ID, existing.Email)
		return
	}

	hash, err := helpers.HashPasswordWithCost(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	person, err := people.Save(ctx, &entity.Person{
		FirstName: "Demo",
		LastName:  "User",
		Email:     email,
		Password:  hash,
	})
	if err != nil {
		log.Fatalf("failed to seed person: %v", err)
	}
	fmt.Printf("seeded person: id=%s email=%s password=%s\n", person.ID, person.Email, password)
}
