package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrlokans/librarian/internal/config"
)

// CheckoutCommand issues a loan of a copy to a user from the command line.
type CheckoutCommand struct {
	CopyID       uint
	UserID       uint
	DueDate      string
	DatabasePath string
}

func NewCheckoutCommand() *CheckoutCommand {
	return &CheckoutCommand{}
}

func (cmd *CheckoutCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)

	copyID := fs.Uint("copy", 0, "ID of the copy to check out (required)")
	userID := fs.Uint("user", 0, "ID of the borrowing user (required)")
	fs.StringVar(&cmd.DueDate, "due", "", "Due date in YYYY-MM-DD format (default: loan period from config)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s checkout -copy <id> -user <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check a copy out to a user. The copy must be AVAILABLE.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *copyID == 0 {
		return fmt.Errorf("required flag -copy not provided")
	}
	if *userID == 0 {
		return fmt.Errorf("required flag -user not provided")
	}
	cmd.CopyID = uint(*copyID)
	cmd.UserID = uint(*userID)

	return nil
}

func (cmd *CheckoutCommand) Run() error {
	dueDate, err := resolveDueDate(cmd.DueDate)
	if err != nil {
		return err
	}

	e, err := newEnv(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer e.Close()

	loan, err := e.circulation.CreateLoan(cmd.CopyID, cmd.UserID, dueDate)
	if err != nil {
		return err
	}

	fmt.Printf("Loan #%d created: copy %d -> user %d, due %s\n",
		loan.ID, loan.CopyID, loan.UserID, loan.DueDate.Format("2006-01-02"))
	return nil
}

// ReturnCommand closes an open loan from the command line.
type ReturnCommand struct {
	LoanID       uint
	DatabasePath string
}

func NewReturnCommand() *ReturnCommand {
	return &ReturnCommand{}
}

func (cmd *ReturnCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("return", flag.ExitOnError)

	loanID := fs.Uint("loan", 0, "ID of the loan to close (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s return -loan <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Close an open loan and release its copy.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *loanID == 0 {
		return fmt.Errorf("required flag -loan not provided")
	}
	cmd.LoanID = uint(*loanID)

	return nil
}

func (cmd *ReturnCommand) Run() error {
	e, err := newEnv(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer e.Close()

	loan, err := e.circulation.ReturnBook(cmd.LoanID)
	if err != nil {
		return err
	}

	fmt.Printf("Loan #%d returned on %s; copy %d is available again\n",
		loan.ID, loan.ReturnDate.Format("2006-01-02"), loan.CopyID)
	return nil
}

func resolveDueDate(raw string) (time.Time, error) {
	if raw == "" {
		cfg := config.NewConfig()
		return time.Now().AddDate(0, 0, cfg.Circulation.LoanPeriodDays), nil
	}
	dueDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -due date %q, expected YYYY-MM-DD", raw)
	}
	return dueDate, nil
}
