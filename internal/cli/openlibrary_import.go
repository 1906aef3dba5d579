package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/metadata"
)

// OpenLibraryImportCommand imports a book's metadata from OpenLibrary.
type OpenLibraryImportCommand struct {
	ISBN         string
	DatabasePath string
}

func NewOpenLibraryImportCommand() *OpenLibraryImportCommand {
	return &OpenLibraryImportCommand{}
}

func (cmd *OpenLibraryImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("openlibrary-import", flag.ExitOnError)

	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN of the book to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s openlibrary-import -isbn <isbn> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch book metadata from OpenLibrary and add the book to the catalog.\n")
		fmt.Fprintf(os.Stderr, "The author and publisher are created when not yet known.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s openlibrary-import -isbn 978-0-13-468599-1\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ISBN == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}

	return nil
}

func (cmd *OpenLibraryImportCommand) Run() error {
	e, err := newEnv(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := config.NewConfig()
	client := metadata.NewOpenLibraryClient(cfg.OpenLibrary.BaseURL)
	importer := metadata.NewImporter(client, e.books, e.authors, e.publishers)

	fmt.Printf("Looking up ISBN %s on OpenLibrary...\n", cmd.ISBN)

	result, err := importer.ImportByISBN(context.Background(), cmd.ISBN)
	if err != nil {
		return err
	}

	if !result.Created {
		fmt.Printf("Book already in catalog: #%d %q\n", result.Book.ID, result.Book.Title)
		return nil
	}

	fmt.Printf("Imported book #%d: %q", result.Book.ID, result.Book.Title)
	if result.Book.PublicationYear > 0 {
		fmt.Printf(" (%d)", result.Book.PublicationYear)
	}
	fmt.Println()
	return nil
}
