package nutrition

// Totals is the sum of calories and macros over a sequence of log entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Progress compares consumed calories against the daily target.
type Progress struct {
	RemainingCalories float64 `json:"remaining_calories"`
	ProgressPercent   float64 `json:"progress_percent"`
	// OverTarget is set when consumption exceeds a positive target. The
	// remaining value stays clamped at 0 either way.
	OverTarget bool `json:"over_target"`
}

// SumTotals adds every entry in order and rounds each field to 2 decimals.
// An empty slice yields zero Totals.
func SumTotals(entries []LogEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return Totals{
		Calories: round2(t.Calories),
		Protein:  round2(t.Protein),
		Carbs:    round2(t.Carbs),
		Fat:      round2(t.Fat),
	}
}

// ComputeProgress returns remaining calories (floored at 0) and percent of
// target consumed (capped at 100, 0 when the target is not positive).
func ComputeProgress(totals Totals, dailyTarget float64) Progress {
	remaining := round2(dailyTarget - totals.Calories)
	if remaining <= 0 {
		remaining = 0
	}

	var percent float64
	if dailyTarget > 0 {
		percent = min(round2((totals.Calories/dailyTarget)*100), 100)
	}

	return Progress{
		RemainingCalories: remaining,
		ProgressPercent:   percent,
		OverTarget:        dailyTarget > 0 && totals.Calories > dailyTarget,
	}
}
