// Package health implements the body-metric formulas exposed by the profile
// and dashboard endpoints: BMI, Mifflin-St Jeor BMR, activity-scaled TDEE and
// Robinson ideal weight. All functions are pure; invalid inputs yield 0.
package health

import "math"

const (
	SexMale   = "male"
	SexFemale = "female"
)

const cmPerInch = 2.54

// BMI returns the body mass index for a weight in kilograms and a height in
// centimeters.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// BMR returns the basal metabolic rate (kcal/day) per Mifflin-St Jeor:
// 10*kg + 6.25*cm - 5*age, +5 for males and -161 for females.
func BMR(sex string, weightKg, heightCm float64, ageYears int) float64 {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexFemale {
		return base - 161
	}
	return base + 5
}

// ActivityFactor maps an activity level to its TDEE multiplier. Unknown
// levels fall back to sedentary.
func ActivityFactor(level string) float64 {
	switch level {
	case "light":
		return 1.375
	case "moderate":
		return 1.55
	case "active":
		return 1.725
	case "very_active":
		return 1.9
	default:
		return 1.2
	}
}

// TDEE returns the total daily energy expenditure for a given BMR and
// activity level.
func TDEE(bmr float64, activityLevel string) float64 {
	if bmr <= 0 {
		return 0
	}
	return bmr * ActivityFactor(activityLevel)
}

// IdealWeight returns the Robinson formula ideal weight in kilograms:
// males 52kg + 1.9kg per inch over 5 feet, females 49kg + 1.7kg per inch.
// Heights at or below 5 feet return the 5-foot base weight.
func IdealWeight(sex string, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	inchesOverFiveFeet := heightCm/cmPerInch - 60
	if inchesOverFiveFeet < 0 {
		inchesOverFiveFeet = 0
	}
	if sex == SexFemale {
		return 49 + 1.7*inchesOverFiveFeet
	}
	return 52 + 1.9*inchesOverFiveFeet
}

// Round1 rounds to one decimal place, the precision used in API responses.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
