// Command todoctl is a small operator tool: it hashes passwords and creates
// user accounts directly in the database.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/server/auth"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/users"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "hashpw":
		err = runHashpw()
	case "adduser":
		err = runAdduser(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: todoctl <hashpw|adduser> [flags]")
}

func promptPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return password, nil
}

// runHashpw reads a password from the terminal and prints its argon2id hash.
func runHashpw() error {
	password, err := promptPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	hasher := auth.NewHasher(auth.DefaultHasherParams())
	fmt.Println(hasher.Hash(string(password)))
	return nil
}

// runAdduser creates an account directly in the database, bypassing the HTTP
// signup flow. Useful for bootstrapping an admin user.
func runAdduser(args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	dsn := fs.String("d", "", "database DSN")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *dsn == "" || *username == "" || *email == "" {
		return fmt.Errorf("adduser requires -d, -u and -e")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	hasher := auth.NewHasher(auth.DefaultHasherParams())
	hash := hasher.Hash(string(password))

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	repo := users.NewPostgresRepository(db)
	user, err := repo.Create(context.Background(), &models.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
	return nil
}
