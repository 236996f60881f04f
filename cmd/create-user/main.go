// CLI tool to create the API login: prompts for a username and password and
// prints the AUTH_* lines to paste into .env.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Username     string
	PasswordHash string
	AuthToken    string
}

func main() {
	creds, err := createCredentials(bufio.NewReader(os.Stdin), os.Stdout, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nAdd these to .env:\n\n")
	fmt.Print(creds.envLines())
}

func createCredentials(reader *bufio.Reader, out io.Writer, cost int) (credentials, error) {
	fmt.Fprint(out, "Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		return credentials{}, fmt.Errorf("username is required")
	}

	fmt.Fprint(out, "Password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if len(password) < 8 {
		return credentials{}, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return credentials{}, fmt.Errorf("hashing password: %w", err)
	}

	return credentials{
		Username:     username,
		PasswordHash: string(hash),
		AuthToken:    uuid.New().String(),
	}, nil
}

// envLines quotes the hash: bcrypt hashes contain '$'.
func (c credentials) envLines() string {
	return fmt.Sprintf("AUTH_USERNAME=%s\nAUTH_PASSWORD_HASH='%s'\nAUTH_TOKEN=%s\n",
		c.Username, c.PasswordHash, c.AuthToken)
}
