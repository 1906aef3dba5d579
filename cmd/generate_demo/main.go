// Command generate_demo creates a demo library database with public domain
// books, a few members and some circulation activity.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/librarian/internal/circulation"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/catalog"
	"github.com/mrlokans/librarian/internal/database/copies"
	"github.com/mrlokans/librarian/internal/database/loans"
	"github.com/mrlokans/librarian/internal/database/reservations"
	"github.com/mrlokans/librarian/internal/database/users"
	"github.com/mrlokans/librarian/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Title           string
	Author          string
	Publisher       string
	ISBN            string
	PublicationYear int
	Copies          int
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo library at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	copyRepo := copies.NewRepository(db.DB)
	authorRepo := catalog.NewAuthorsRepository(db.DB)
	publisherRepo := catalog.NewPublishersRepository(db.DB)

	service := circulation.NewService(
		bookRepo,
		userRepo,
		copyRepo,
		loans.NewRepository(db.DB),
		reservations.NewRepository(db.DB),
	)

	var allCopies []entities.Copy
	for _, cfg := range publicDomainBooks() {
		author := &entities.Author{Name: cfg.Author}
		if existing, err := authorRepo.GetByName(cfg.Author); err == nil {
			author = existing
		} else if err := authorRepo.Save(author); err != nil {
			log.Printf("Failed to save author %s: %v", cfg.Author, err)
			continue
		}

		publisher := &entities.Publisher{Name: cfg.Publisher}
		if existing, err := publisherRepo.GetByName(cfg.Publisher); err == nil {
			publisher = existing
		} else if err := publisherRepo.Save(publisher); err != nil {
			log.Printf("Failed to save publisher %s: %v", cfg.Publisher, err)
			continue
		}

		book := &entities.Book{
			Title:           cfg.Title,
			ISBN:            cfg.ISBN,
			PublicationYear: cfg.PublicationYear,
			AuthorID:        author.ID,
			PublisherID:     publisher.ID,
		}
		if err := bookRepo.Save(book); err != nil {
			log.Printf("Failed to save book %s: %v", cfg.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s (%d copies)", cfg.Title, cfg.Author, cfg.Copies)

		for i := 0; i < cfg.Copies; i++ {
			copy := &entities.Copy{BookID: book.ID}
			if err := copyRepo.Save(copy); err != nil {
				log.Printf("Failed to save copy of %s: %v", cfg.Title, err)
				continue
			}
			allCopies = append(allCopies, *copy)
		}
	}

	members := seedMembers(userRepo)

	if len(allCopies) > 0 && len(members) > 0 {
		dueDate := time.Now().AddDate(0, 0, 14)
		if _, err := service.CreateLoan(allCopies[0].ID, members[0].ID, dueDate); err != nil {
			log.Printf("Failed to create demo loan: %v", err)
		}
		if _, err := service.CreateReservation(allCopies[0].BookID, members[1%len(members)].ID); err != nil {
			log.Printf("Failed to create demo reservation: %v", err)
		}
	}

	log.Println("Demo library generated successfully!")
}

func seedMembers(repo *users.Repository) []*entities.User {
	demoMembers := []struct {
		Name  string
		Email string
	}{
		{"Ada Lovelace", "ada@example.com"},
		{"Alan Turing", "alan@example.com"},
		{"Grace Hopper", "grace@example.com"},
	}

	var members []*entities.User
	for _, m := range demoMembers {
		user, err := repo.Create(m.Name, m.Email, "demo-password")
		if err != nil {
			log.Printf("Failed to create member %s: %v", m.Name, err)
			continue
		}
		members = append(members, user)
	}
	return members
}

func publicDomainBooks() []demoBook {
	return []demoBook{
		{
			Title:           "Meditations",
			Author:          "Marcus Aurelius",
			Publisher:       "Demo Press",
			ISBN:            "9780140449334",
			PublicationYear: 180,
			Copies:          2,
		},
		{
			Title:           "Pride and Prejudice",
			Author:          "Jane Austen",
			Publisher:       "Demo Press",
			ISBN:            "9780141439518",
			PublicationYear: 1813,
			Copies:          3,
		},
		{
			Title:           "Moby-Dick",
			Author:          "Herman Melville",
			Publisher:       "Demo Press",
			ISBN:            "9780142437247",
			PublicationYear: 1851,
			Copies:          1,
		},
		{
			Title:           "Frankenstein",
			Author:          "Mary Shelley",
			Publisher:       "Demo Press",
			ISBN:            "9780141439471",
			PublicationYear: 1818,
			Copies:          2,
		},
		{
			Title:           "The Time Machine",
			Author:          "H. G. Wells",
			Publisher:       "Demo Press",
			ISBN:            "9780141439976",
			PublicationYear: 1895,
			Copies:          2,
		},
	}
}
