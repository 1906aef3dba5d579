package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/circulation"
	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/catalog"
	"github.com/mrlokans/librarian/internal/database/copies"
	"github.com/mrlokans/librarian/internal/database/loans"
	"github.com/mrlokans/librarian/internal/database/reservations"
	"github.com/mrlokans/librarian/internal/database/users"
	http_controllers "github.com/mrlokans/librarian/internal/http"
	"github.com/mrlokans/librarian/internal/metadata"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarian v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	authorRepo := catalog.NewAuthorsRepository(db.DB)
	publisherRepo := catalog.NewPublishersRepository(db.DB)
	genreRepo := catalog.NewGenresRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	copyRepo := copies.NewRepository(db.DB)
	loanRepo := loans.NewRepository(db.DB)
	reservationRepo := reservations.NewRepository(db.DB)

	circulationService := circulation.NewService(bookRepo, userRepo, copyRepo, loanRepo, reservationRepo)

	openLibraryClient := metadata.NewOpenLibraryClient(cfg.OpenLibrary.BaseURL)
	importer := metadata.NewImporter(openLibraryClient, bookRepo, authorRepo, publisherRepo)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Circulation:    circulationService,
		BookStore:      bookRepo,
		AuthorStore:    authorRepo,
		PublisherStore: publisherRepo,
		GenreStore:     genreRepo,
		UserStore:      userRepo,
		CopyStore:      copyRepo,
		Importer:       importer,
		Version:        version,
	})

	Serve(router, cfg)
}
