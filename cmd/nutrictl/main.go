// nutrictl is an offline calculator over the same formulas and food catalog
// the API uses. Nothing is persisted.
//
//	nutrictl metrics --name Ada --sex female --age 36 --height 165 --weight 58 --activity light --diet cut
//	nutrictl food --name banana --grams 150
//	nutrictl catalog --q rice
//	nutrictl day --item "Banana:150" --item "White Rice:200" --target 2000
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
)

const (
	defaultCatalogPath = "data/food_database.json"
	maxGrams           = 100_000
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	if err := newApp(os.Stdout).Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "nutrictl",
		Usage:  "Nutrition metrics and food calculator",
		Writer: out,
		Commands: []*cli.Command{
			metricsCommand(out),
			foodCommand(out),
			catalogCommand(out),
			dayCommand(out),
		},
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{Name: "catalog", Value: defaultCatalogPath, Usage: "food catalog file (.json or .yaml)"}
}

func metricsCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Compute BMI, BMR and the daily calorie target for a profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "user"},
			&cli.StringFlag{Name: "sex", Required: true, Usage: "male|female"},
			&cli.IntFlag{Name: "age", Required: true},
			&cli.FloatFlag{Name: "height", Required: true, Usage: "height in cm"},
			&cli.FloatFlag{Name: "weight", Required: true, Usage: "weight in kg"},
			&cli.StringFlag{Name: "activity", Value: string(nutrition.ActivityModerate), Usage: "sedentary|light|moderate|active|very_active"},
			&cli.StringFlag{Name: "diet", Value: string(nutrition.DietNone), Usage: "bulk|cut|none"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			p := nutrition.Profile{
				Name:          c.String("name"),
				Sex:           nutrition.Sex(c.String("sex")),
				Age:           c.Int("age"),
				HeightCM:      c.Float("height"),
				WeightKG:      c.Float("weight"),
				ActivityLevel: nutrition.ActivityLevel(c.String("activity")),
				DietMode:      nutrition.DietMode(c.String("diet")),
			}
			if p.Age <= 0 || p.Age > nutrition.MaxAgeYears ||
				!(p.HeightCM > 0) || p.HeightCM > nutrition.MaxHeightCM ||
				!(p.WeightKG > 0) || p.WeightKG > nutrition.MaxWeightKG {
				return fmt.Errorf("age, height and weight must be greater than 0 and at most %d, %d and %d",
					nutrition.MaxAgeYears, nutrition.MaxHeightCM, nutrition.MaxWeightKG)
			}

			m := nutrition.ComputeMetrics(p)
			if c.Bool("json") {
				return printJSON(out, m)
			}
			printMetrics(out, m)
			return nil
		},
	}
}

func foodCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "food",
		Usage: "Calories and macros for a quantity of one food",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.FloatFlag{Name: "grams", Value: 100},
			catalogFlag(),
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if !validGrams(c.Float("grams")) {
				return fmt.Errorf("grams must be greater than 0 and at most %d", maxGrams)
			}
			catalog, err := nutrition.ReadCatalog(c.String("catalog"))
			if err != nil {
				return err
			}

			entry := nutrition.NewLogEntry(c.String("name"), c.Float("grams"), catalog)
			if c.Bool("json") {
				return printJSON(out, entry)
			}
			printLogEntries(out, []nutrition.LogEntry{entry})
			if !entry.Found {
				fmt.Fprintf(out, "%q is not in the catalog\n", entry.Name)
			}
			return nil
		},
	}
}

func catalogCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List catalog foods, optionally filtered by name",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "q", Usage: "case-insensitive name filter"},
			catalogFlag(),
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := nutrition.ReadCatalog(c.String("catalog"))
			if err != nil {
				return err
			}

			foods := catalog.Search(c.String("q"))
			if c.Bool("json") {
				return printJSON(out, foods)
			}
			printFoods(out, foods)
			return nil
		},
	}
}

func dayCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "day",
		Usage: "Totals and progress for a list of foods eaten in one day",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "item", Required: true, Usage: "Name:grams, repeatable"},
			&cli.FloatFlag{Name: "target", Usage: "daily calorie target"},
			catalogFlag(),
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := nutrition.ReadCatalog(c.String("catalog"))
			if err != nil {
				return err
			}

			entries := make([]nutrition.LogEntry, 0, len(c.StringSlice("item")))
			for _, raw := range c.StringSlice("item") {
				name, grams, err := parseItem(raw)
				if err != nil {
					return err
				}
				entries = append(entries, nutrition.NewLogEntry(name, grams, catalog))
			}

			totals := nutrition.SumTotals(entries)
			progress := nutrition.ComputeProgress(totals, c.Float("target"))
			if c.Bool("json") {
				return printJSON(out, map[string]any{
					"items":    entries,
					"totals":   totals,
					"progress": progress,
				})
			}
			printLogEntries(out, entries)
			fmt.Fprintln(out)
			printDay(out, totals, progress)
			return nil
		},
	}
}

// parseItem splits "Name:grams". The last colon separates the quantity so
// names may contain colons.
func parseItem(raw string) (string, float64, error) {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return "", 0, fmt.Errorf("item %q: expected Name:grams", raw)
	}
	name := strings.TrimSpace(raw[:i])
	if name == "" {
		return "", 0, fmt.Errorf("item %q: name is required", raw)
	}
	grams, err := strconv.ParseFloat(strings.TrimSpace(raw[i+1:]), 64)
	if err != nil || !validGrams(grams) {
		return "", 0, fmt.Errorf("item %q: grams must be a number greater than 0", raw)
	}
	return name, grams, nil
}

// validGrams rejects NaN, infinities and quantities outside (0, maxGrams].
func validGrams(g float64) bool {
	return g > 0 && g <= maxGrams
}
