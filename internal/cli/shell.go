package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/entities"
)

// ShellCommand runs an interactive librarian session over the database.
type ShellCommand struct {
	DatabasePath string
}

func NewShellCommand() *ShellCommand {
	return &ShellCommand{}
}

func (cmd *ShellCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s shell [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Start an interactive librarian session.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ShellCommand) Run() error {
	e, err := newEnv(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer e.Close()

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Librarian interactive shell")
	fmt.Println("Available commands:")
	fmt.Println("  Catalog: add book, list books, add copy, list copies, copy status")
	fmt.Println("  Members: add user, list users")
	fmt.Println("  Circulation: checkout, return, list loans")
	fmt.Println("  Reservations: reserve, cancel reservation, fulfill reservation, list reservations")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "add book":
			cmd.handleAddBook(scanner, e)
		case "list books":
			cmd.handleListBooks(e)
		case "add copy":
			cmd.handleAddCopy(scanner, e)
		case "list copies":
			cmd.handleListCopies(e)
		case "copy status":
			cmd.handleCopyStatus(scanner, e)
		case "add user":
			cmd.handleAddUser(scanner, e)
		case "list users":
			cmd.handleListUsers(e)
		case "checkout":
			cmd.handleCheckout(scanner, e)
		case "return":
			cmd.handleReturn(scanner, e)
		case "list loans":
			cmd.handleListLoans(e)
		case "reserve":
			cmd.handleReserve(scanner, e)
		case "cancel reservation":
			cmd.handleCancelReservation(scanner, e)
		case "fulfill reservation":
			cmd.handleFulfillReservation(scanner, e)
		case "list reservations":
			cmd.handleListReservations(e)
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		case "":
			// ignore empty lines
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}

	return nil
}

func promptLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptID(sc *bufio.Scanner, prompt string) (uint, bool) {
	raw, ok := promptLine(sc, prompt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		fmt.Println("Invalid ID.")
		return 0, false
	}
	return uint(id), true
}

// promptPassword reads a password with terminal echo disabled.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

func (cmd *ShellCommand) handleAddBook(sc *bufio.Scanner, e *env) {
	title, ok := promptLine(sc, "Title: ")
	if !ok || title == "" {
		fmt.Println("Title cannot be empty.")
		return
	}
	authorName, ok := promptLine(sc, "Author: ")
	if !ok || authorName == "" {
		fmt.Println("Author cannot be empty.")
		return
	}

	author, err := e.authors.GetByName(authorName)
	if err != nil {
		author = &entities.Author{Name: authorName}
		if err := e.authors.Save(author); err != nil {
			fmt.Printf("Error creating author: %v\n", err)
			return
		}
	}

	book := &entities.Book{Title: title, AuthorID: author.ID}
	if err := e.books.Save(book); err != nil {
		fmt.Printf("Error saving book: %v\n", err)
		return
	}
	fmt.Printf("Book #%d added.\n", book.ID)
}

func (cmd *ShellCommand) handleListBooks(e *env) {
	books, err := e.books.GetAll()
	if err != nil {
		fmt.Printf("Error listing books: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books in the catalog.")
		return
	}
	fmt.Printf("%-5s %-40s %-25s %s\n", "ID", "Title", "Author", "ISBN")
	for _, book := range books {
		fmt.Printf("%-5d %-40s %-25s %s\n", book.ID, book.Title, book.Author.Name, book.ISBN)
	}
}

func (cmd *ShellCommand) handleAddCopy(sc *bufio.Scanner, e *env) {
	bookID, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}
	if _, err := e.books.GetByID(bookID); err != nil {
		fmt.Printf("Book %d not found.\n", bookID)
		return
	}

	mediaType, _ := promptLine(sc, "Media type (BOOK/DVD/MAGAZINE, default BOOK): ")
	copy := &entities.Copy{BookID: bookID}
	if mediaType != "" {
		copy.MediaType = entities.MediaType(strings.ToUpper(mediaType))
		if !entities.IsValidMediaType(copy.MediaType) {
			fmt.Printf("Unknown media type %q.\n", mediaType)
			return
		}
	}

	if err := e.copies.Save(copy); err != nil {
		fmt.Printf("Error saving copy: %v\n", err)
		return
	}
	fmt.Printf("Copy #%d added (barcode %s).\n", copy.ID, copy.Barcode)
}

func (cmd *ShellCommand) handleListCopies(e *env) {
	copies, err := e.copies.GetAll()
	if err != nil {
		fmt.Printf("Error listing copies: %v\n", err)
		return
	}
	if len(copies) == 0 {
		fmt.Println("No copies registered.")
		return
	}
	fmt.Printf("%-5s %-40s %-12s %-10s %s\n", "ID", "Book", "Status", "Media", "Barcode")
	for _, copy := range copies {
		fmt.Printf("%-5d %-40s %-12s %-10s %s\n",
			copy.ID, copy.Book.Title, copy.Status, copy.MediaType, copy.Barcode)
	}
}

func (cmd *ShellCommand) handleCopyStatus(sc *bufio.Scanner, e *env) {
	copyID, ok := promptID(sc, "Copy ID: ")
	if !ok {
		return
	}
	raw, ok := promptLine(sc, "New status (AVAILABLE/ON_LOAN/LOST/DAMAGED/RESERVED): ")
	if !ok {
		return
	}

	copy, err := e.circulation.UpdateCopyStatus(copyID, entities.CopyStatus(strings.ToUpper(raw)))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Copy #%d is now %s.\n", copy.ID, copy.Status)
}

func (cmd *ShellCommand) handleAddUser(sc *bufio.Scanner, e *env) {
	name, ok := promptLine(sc, "Name: ")
	if !ok || name == "" {
		fmt.Println("Name cannot be empty.")
		return
	}
	email, ok := promptLine(sc, "Email: ")
	if !ok || email == "" {
		fmt.Println("Email cannot be empty.")
		return
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if len(password) < 8 {
		fmt.Println("Password must be at least 8 characters.")
		return
	}

	user, err := e.users.Create(name, email, password)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}
	fmt.Printf("User #%d registered.\n", user.ID)
}

func (cmd *ShellCommand) handleListUsers(e *env) {
	users, err := e.users.GetAll()
	if err != nil {
		fmt.Printf("Error listing users: %v\n", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No registered users.")
		return
	}
	fmt.Printf("%-5s %-30s %s\n", "ID", "Name", "Email")
	for _, user := range users {
		fmt.Printf("%-5d %-30s %s\n", user.ID, user.Name, user.Email)
	}
}

func (cmd *ShellCommand) handleCheckout(sc *bufio.Scanner, e *env) {
	copyID, ok := promptID(sc, "Copy ID: ")
	if !ok {
		return
	}
	userID, ok := promptID(sc, "User ID: ")
	if !ok {
		return
	}
	rawDue, _ := promptLine(sc, "Due date (YYYY-MM-DD, empty for default period): ")

	dueDate, err := resolveDueDate(rawDue)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	loan, err := e.circulation.CreateLoan(copyID, userID, dueDate)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Loan #%d created, due %s.\n", loan.ID, loan.DueDate.Format("2006-01-02"))
}

func (cmd *ShellCommand) handleReturn(sc *bufio.Scanner, e *env) {
	loanID, ok := promptID(sc, "Loan ID: ")
	if !ok {
		return
	}

	loan, err := e.circulation.ReturnBook(loanID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Loan #%d returned; copy %d is available again.\n", loan.ID, loan.CopyID)
}

func (cmd *ShellCommand) handleListLoans(e *env) {
	loans, err := e.circulation.ListLoans(0, 0)
	if err != nil {
		fmt.Printf("Error listing loans: %v\n", err)
		return
	}
	if len(loans) == 0 {
		fmt.Println("No loans recorded.")
		return
	}
	fmt.Printf("%-5s %-6s %-25s %-12s %-12s %s\n", "ID", "Copy", "User", "Loaned", "Due", "Returned")
	for _, loan := range loans {
		returned := "-"
		if loan.ReturnDate != nil {
			returned = loan.ReturnDate.Format("2006-01-02")
		}
		fmt.Printf("%-5d %-6d %-25s %-12s %-12s %s\n",
			loan.ID, loan.CopyID, loan.User.Name,
			loan.LoanDate.Format("2006-01-02"), loan.DueDate.Format("2006-01-02"), returned)
	}
}

func (cmd *ShellCommand) handleReserve(sc *bufio.Scanner, e *env) {
	bookID, ok := promptID(sc, "Book ID: ")
	if !ok {
		return
	}
	userID, ok := promptID(sc, "User ID: ")
	if !ok {
		return
	}

	reservation, err := e.circulation.CreateReservation(bookID, userID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Reservation #%d placed (%s).\n", reservation.ID, reservation.Status)
}

func (cmd *ShellCommand) handleCancelReservation(sc *bufio.Scanner, e *env) {
	id, ok := promptID(sc, "Reservation ID: ")
	if !ok {
		return
	}

	reservation, err := e.circulation.CancelReservation(id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Reservation #%d is now %s.\n", reservation.ID, reservation.Status)
}

func (cmd *ShellCommand) handleFulfillReservation(sc *bufio.Scanner, e *env) {
	id, ok := promptID(sc, "Reservation ID: ")
	if !ok {
		return
	}

	reservation, err := e.circulation.FulfillReservation(id)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Reservation #%d is now %s.\n", reservation.ID, reservation.Status)
}

func (cmd *ShellCommand) handleListReservations(e *env) {
	reservations, err := e.circulation.ListReservations(0)
	if err != nil {
		fmt.Printf("Error listing reservations: %v\n", err)
		return
	}
	if len(reservations) == 0 {
		fmt.Println("No reservations recorded.")
		return
	}
	fmt.Printf("%-5s %-40s %-25s %-12s %s\n", "ID", "Book", "User", "Placed", "Status")
	for _, reservation := range reservations {
		fmt.Printf("%-5d %-40s %-25s %-12s %s\n",
			reservation.ID, reservation.Book.Title, reservation.User.Name,
			reservation.ReservationDate.Format("2006-01-02"), reservation.Status)
	}
}
