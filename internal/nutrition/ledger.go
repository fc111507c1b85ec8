package nutrition

// Macros are macronutrient grams for a specific quantity of food.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// LogEntry is one logged food with nutrition derived at creation time.
// Found is false when the name did not match the catalog and every
// derived value is zero.
type LogEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Found    bool    `json:"found"`
}

// FoodCalories returns kcal for grams of the named food, rounded to 2
// decimals. A catalog miss returns (0, false).
func FoodCalories(name string, grams float64, catalog Catalog) (float64, bool) {
	e, ok := catalog.Lookup(name)
	if !ok {
		return 0, false
	}
	return round2((e.CaloriesPer100g / 100) * grams), true
}

// FoodMacros returns protein, carbs and fat grams for grams of the named
// food, each rounded to 2 decimals. A catalog miss returns zeros and false.
func FoodMacros(name string, grams float64, catalog Catalog) (Macros, bool) {
	e, ok := catalog.Lookup(name)
	if !ok {
		return Macros{}, false
	}
	factor := grams / 100
	return Macros{
		Protein: round2(e.ProteinG * factor),
		Carbs:   round2(e.CarbsG * factor),
		Fat:     round2(e.FatG * factor),
	}, true
}

// NewLogEntry builds an entry for grams of the named food. grams is not
// validated here; callers reject non-positive quantities first.
func NewLogEntry(name string, grams float64, catalog Catalog) LogEntry {
	calories, found := FoodCalories(name, grams, catalog)
	macros, _ := FoodMacros(name, grams, catalog)
	return LogEntry{
		Name:     name,
		Quantity: grams,
		Calories: calories,
		Protein:  macros.Protein,
		Carbs:    macros.Carbs,
		Fat:      macros.Fat,
		Found:    found,
	}
}
