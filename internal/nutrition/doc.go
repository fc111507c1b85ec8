// Package nutrition computes body-composition metrics (BMI, BMR, daily
// calorie target) and food-log nutrition from a static catalog.
//
// Every function is pure. Unknown enum tokens and catalog misses never fail:
// they resolve to documented fallback values, and the variants returning a
// bool let callers detect the fallback.
package nutrition
