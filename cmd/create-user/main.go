// CLI tool to seed a profile into PostgreSQL and print its session token.
// Metrics are computed the same way POST /api/profile computes them.
// Usage: DB_URL=postgres://... go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/session"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
	"github.com/PodderInstituteBD/NutriVision/internal/store/postgres"
	"github.com/PodderInstituteBD/NutriVision/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	p, err := readProfile(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	repo := postgres.NewRepository(pool, logger.New())
	defer repo.Close()

	creds, err := session.NewCredentials(p.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating credentials: %v\n", err)
		os.Exit(1)
	}

	m := nutrition.ComputeMetrics(p)
	record := store.NewProfileRecord(p, m)
	record.Email = creds.Email
	record.PasswordHash = creds.PasswordHash
	record.SessionToken = creds.Token

	record, err = repo.CreateProfile(ctx, record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nProfile created successfully!\n")
	fmt.Printf("  ID:           %d\n", record.ID)
	fmt.Printf("  Email:        %s\n", record.Email)
	fmt.Printf("  BMI:          %.2f (%s)\n", m.BMI, m.BMICategory)
	fmt.Printf("  Daily target: %.2f kcal\n", m.DailyTarget)
	fmt.Printf("  Token:        %s\n", creds.Token)
}

// readProfile prompts for every profile field on out and reads answers from in.
func readProfile(in *bufio.Reader, out io.Writer) (nutrition.Profile, error) {
	ask := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)
		line, _ := in.ReadString('\n')
		return strings.TrimSpace(line)
	}
	bounded := func(label string, limit float64) (float64, error) {
		v, err := strconv.ParseFloat(ask(label), 64)
		if err != nil || !(v > 0) || v > limit {
			return 0, fmt.Errorf("%s must be a number greater than 0 and at most %g", strings.ToLower(label), limit)
		}
		return v, nil
	}

	var p nutrition.Profile
	if p.Name = ask("Name"); p.Name == "" {
		return p, fmt.Errorf("name is required")
	}
	p.Sex = nutrition.Sex(ask("Sex (male/female)"))

	age, err := strconv.Atoi(ask("Age"))
	if err != nil || age <= 0 || age > nutrition.MaxAgeYears {
		return p, fmt.Errorf("age must be a whole number greater than 0 and at most %d", nutrition.MaxAgeYears)
	}
	p.Age = age
	if p.HeightCM, err = bounded("Height (cm)", nutrition.MaxHeightCM); err != nil {
		return p, err
	}
	if p.WeightKG, err = bounded("Weight (kg)", nutrition.MaxWeightKG); err != nil {
		return p, err
	}

	p.ActivityLevel = nutrition.ActivityLevel(ask(fmt.Sprintf("Activity level %v", nutrition.ActivityLevels())))
	p.DietMode = nutrition.DietMode(ask(fmt.Sprintf("Diet mode %v", nutrition.DietModes())))
	return p, nil
}
