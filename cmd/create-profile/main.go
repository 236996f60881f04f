// CLI tool to complete the profile from the terminal against the configured
// store backend.
// Usage: go run ./cmd/create-profile
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lg/body-progress-go-api/internal/config"
	"lg/body-progress-go-api/internal/kv"
	"lg/body-progress-go-api/internal/logger"
	"lg/body-progress-go-api/internal/metrics"
	"lg/body-progress-go-api/internal/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	store, err := kv.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s store: %v\n", cfg.StoreBackend, err)
		os.Exit(1)
	}
	defer kv.Close(ctx, store)

	profiles := profile.NewStore(store, log)
	profiles.LoadProfile(ctx)
	if existing := profiles.Profile(); existing != nil {
		fmt.Fprintf(os.Stderr, "A profile already exists (%s %s). Delete it first.\n", existing.FirstName, existing.LastName)
		os.Exit(1)
	}

	in, err := readInput(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := profiles.SaveUser(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := profiles.Profile()
	if p == nil {
		fmt.Fprintln(os.Stderr, "Profile was not saved; see log for details.")
		os.Exit(1)
	}

	bmi, _ := profiles.CurrentBMI()
	fmt.Printf("\nProfile created successfully!\n")
	fmt.Printf("  ID:   %s\n", p.ID)
	fmt.Printf("  Name: %s %s\n", p.FirstName, p.LastName)
	fmt.Printf("  BMI:  %.1f (%s)\n", bmi, metrics.BMICategory(bmi))
}

// readInput prompts for each profile field. Numbers that don't parse are
// left zero and rejected later by SaveUser's validation.
func readInput(reader *bufio.Reader, out io.Writer) (profile.UserProfileInput, error) {
	ask := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	var in profile.UserProfileInput
	in.FirstName = ask("First name")
	in.LastName = ask("Last name")
	in.Age, _ = strconv.Atoi(ask("Age"))
	in.Nationality = ask("Nationality")
	in.Weight, _ = strconv.ParseFloat(ask("Weight (kg)"), 64)
	in.Height, _ = strconv.ParseFloat(ask("Height (cm)"), 64)
	in.Address = ask("Address")
	in.Gender = metrics.Gender(strings.ToLower(ask("Gender (male/female)")))

	if !in.Gender.Valid() {
		return in, fmt.Errorf("gender must be male or female, got %q", in.Gender)
	}
	return in, nil
}
