package nutrition

import (
	"math"
	"strings"
)

// Sex is the biological sex used by the Mifflin-St Jeor equation.
// Comparison against the known values is case-insensitive.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Recognized reports whether s is male or female, ignoring case.
func (s Sex) Recognized() bool {
	switch Sex(strings.ToLower(string(s))) {
	case SexMale, SexFemale:
		return true
	}
	return false
}

// ActivityLevel is the self-reported activity token. Matching is exact.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// DietMode is the caloric adjustment strategy layered on top of the daily target.
type DietMode string

const (
	DietBulk       DietMode = "bulk"
	DietCut        DietMode = "cut"
	DietWeightGain DietMode = "weight_gain"
	DietWeightLoss DietMode = "weight_loss"
	DietNone       DietMode = "none"
)

// BMICategory is the screening bucket for a BMI value.
type BMICategory string

const (
	BMIInvalid     BMICategory = "Invalid"
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// defaultActivityMultiplier applies to any unknown activity level.
const defaultActivityMultiplier = 1.2

// dietModeAdjustments are flat kcal offsets, not multipliers.
var dietModeAdjustments = map[DietMode]float64{
	DietBulk:       300,
	DietCut:        -300,
	DietWeightGain: 500,
	DietWeightLoss: -500,
	DietNone:       0,
}

// Upper bounds for profile inputs. Callers reject values outside
// (0, max] before building a Profile; every derived metric stays finite
// inside them.
const (
	MaxAgeYears = 150
	MaxHeightCM = 300
	MaxWeightKG = 700
)

// Profile is a caller-held snapshot of the user's biometric inputs.
// Values are expected to be validated (positive age, height, weight) before use.
type Profile struct {
	Name          string        `json:"name"`
	Sex           Sex           `json:"sex"`
	Age           int           `json:"age"`
	HeightCM      float64       `json:"height_cm"`
	WeightKG      float64       `json:"weight_kg"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	DietMode      DietMode      `json:"diet_mode"`
}

// Metrics is everything derived from a Profile. The *Recognized flags are
// false when the corresponding input fell back to its default.
type Metrics struct {
	BMI                float64     `json:"bmi"`
	BMICategory        BMICategory `json:"bmi_category"`
	BMR                float64     `json:"bmr"`
	BaseDailyCalories  float64     `json:"base_daily_calories"`
	DietAdjustment     float64     `json:"diet_adjustment"`
	DailyTarget        float64     `json:"daily_target"`
	SexRecognized      bool        `json:"sex_recognized"`
	ActivityRecognized bool        `json:"activity_recognized"`
	DietModeRecognized bool        `json:"diet_mode_recognized"`
}

/* ─── Formulas ───────────────────────────────────────────────────────── */

// ComputeBMI returns weight / height² rounded to 2 decimals, and the category
// of that rounded value. A non-positive height yields (0, BMIInvalid).
func ComputeBMI(weightKG, heightCM float64) (float64, BMICategory) {
	if heightCM <= 0 {
		return 0, BMIInvalid
	}
	heightM := heightCM / 100
	bmi := round2(weightKG / (heightM * heightM))
	return bmi, CategorizeBMI(bmi)
}

// CategorizeBMI buckets a BMI value using half-open intervals with an
// exclusive upper bound: 18.5 is Normal and 24.9 is Overweight.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 24.9:
		return BMINormal
	case bmi < 29.9:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// ComputeBMR estimates basal metabolic rate with Mifflin-St Jeor.
// Unknown sex values return 0.
func ComputeBMR(weightKG, heightCM float64, ageYears int, sex Sex) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	switch Sex(strings.ToLower(string(sex))) {
	case SexMale:
		return base + 5
	case SexFemale:
		return base - 161
	default:
		return 0
	}
}

// ActivityMultiplier returns the multiplier for level and whether the level
// was recognized. Unknown levels get the sedentary multiplier.
func ActivityMultiplier(level ActivityLevel) (float64, bool) {
	if m, ok := activityMultipliers[level]; ok {
		return m, true
	}
	return defaultActivityMultiplier, false
}

// ComputeDailyCalories multiplies bmr by the activity multiplier, rounded to 2 decimals.
func ComputeDailyCalories(bmr float64, level ActivityLevel) float64 {
	m, _ := ActivityMultiplier(level)
	return round2(bmr * m)
}

// DietModeAdjustment returns the flat kcal offset for mode and whether the
// mode was recognized. Unknown modes adjust by 0.
func DietModeAdjustment(mode DietMode) (float64, bool) {
	adj, ok := dietModeAdjustments[mode]
	return adj, ok
}

// ApplyDietModeAdjustment adds the diet mode offset to a base daily target.
func ApplyDietModeAdjustment(baseDailyCalories float64, mode DietMode) float64 {
	adj, _ := DietModeAdjustment(mode)
	return baseDailyCalories + adj
}

// ComputeMetrics derives BMI, BMR and the daily calorie target from p.
func ComputeMetrics(p Profile) Metrics {
	bmi, category := ComputeBMI(p.WeightKG, p.HeightCM)
	bmr := ComputeBMR(p.WeightKG, p.HeightCM, p.Age, p.Sex)
	base := ComputeDailyCalories(bmr, p.ActivityLevel)
	_, activityOK := ActivityMultiplier(p.ActivityLevel)
	adj, dietOK := DietModeAdjustment(p.DietMode)

	return Metrics{
		BMI:                bmi,
		BMICategory:        category,
		BMR:                bmr,
		BaseDailyCalories:  base,
		DietAdjustment:     adj,
		DailyTarget:        base + adj,
		SexRecognized:      p.Sex.Recognized(),
		ActivityRecognized: activityOK,
		DietModeRecognized: dietOK,
	}
}

// ActivityLevels lists the recognized activity levels from least to most active.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}
}

// DietModes lists the recognized diet modes.
func DietModes() []DietMode {
	return []DietMode{DietBulk, DietCut, DietWeightGain, DietWeightLoss, DietNone}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
