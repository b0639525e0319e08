// File: /utils/validators.go
package utils

import (
	"regexp"
	"unicode"

	"github.com/shopspring/decimal"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}

// maxTripDistanceKm caps a single day's distance; anything above is a typo
var maxTripDistanceKm = decimal.NewFromInt(10000)

// maxRatePerKm caps a kilometric rate in euros per km
var maxRatePerKm = decimal.NewFromInt(100)

func IsValidDistance(km decimal.Decimal) bool {
	return km.Sign() >= 0 && km.LessThanOrEqual(maxTripDistanceKm)
}

func IsValidRate(rate decimal.Decimal) bool {
	return rate.Sign() >= 0 && rate.LessThanOrEqual(maxRatePerKm)
}

func IsValidAmount(amount decimal.Decimal) bool {
	return amount.Sign() >= 0
}
