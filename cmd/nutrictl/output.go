package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printKV(w io.Writer, rows [][2]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printMetrics(w io.Writer, m nutrition.Metrics) {
	printKV(w, [][2]string{
		{"bmi", formatFloat(m.BMI)},
		{"bmi_category", string(m.BMICategory)},
		{"bmr", formatFloat(m.BMR)},
		{"base_daily_calories", formatFloat(m.BaseDailyCalories)},
		{"diet_adjustment", formatFloat(m.DietAdjustment)},
		{"daily_target", formatFloat(m.DailyTarget)},
		{"sex_recognized", strconv.FormatBool(m.SexRecognized)},
		{"activity_recognized", strconv.FormatBool(m.ActivityRecognized)},
		{"diet_mode_recognized", strconv.FormatBool(m.DietModeRecognized)},
	})
}

func printFoods(w io.Writer, foods []nutrition.FoodCatalogEntry) {
	rows := make([][]string, 0, len(foods))
	for _, f := range foods {
		rows = append(rows, []string{
			f.Name,
			formatFloat(f.CaloriesPer100g),
			formatFloat(f.ProteinG),
			formatFloat(f.CarbsG),
			formatFloat(f.FatG),
		})
	}
	printTable(w, []string{"NAME", "KCAL/100G", "PROTEIN", "CARBS", "FAT"}, rows)
}

func printLogEntries(w io.Writer, entries []nutrition.LogEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			formatFloat(e.Quantity),
			formatFloat(e.Calories),
			formatFloat(e.Protein),
			formatFloat(e.Carbs),
			formatFloat(e.Fat),
			strconv.FormatBool(e.Found),
		})
	}
	printTable(w, []string{"NAME", "GRAMS", "KCAL", "PROTEIN", "CARBS", "FAT", "FOUND"}, rows)
}

func printDay(w io.Writer, t nutrition.Totals, p nutrition.Progress) {
	printKV(w, [][2]string{
		{"calories", formatFloat(t.Calories)},
		{"protein", formatFloat(t.Protein)},
		{"carbs", formatFloat(t.Carbs)},
		{"fat", formatFloat(t.Fat)},
		{"remaining_calories", formatFloat(p.RemainingCalories)},
		{"progress_percent", formatFloat(p.ProgressPercent)},
		{"over_target", strconv.FormatBool(p.OverTarget)},
	})
}
