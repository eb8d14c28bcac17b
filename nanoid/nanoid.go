package nanoid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 16

	lowercase     = "abcdefghijklmnopqrstuvwxyz"
	uppercase     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerUpper    = lowercase + uppercase
	numLowerUpper = "0123456789" + lowerUpper
)

func getSize(l ...int) int {
	if len(l) > 0 {
		return l[0]
	}
	return defaultSize
}

// Must generates a nanoid with optional length using the default alphabet
func Must(l ...int) string {
	return gonanoid.Must(getSize(l...))
}

// String generates a nanoid using only letters with optional length
func String(l ...int) string {
	return gonanoid.MustGenerate(lowerUpper, getSize(l...))
}

// Lower generates a nanoid using only lowercase letters with optional length
func Lower(l ...int) string {
	return gonanoid.MustGenerate(lowercase, getSize(l...))
}

// Upper generates a nanoid using only uppercase letters with optional length
func Upper(l ...int) string {
	return gonanoid.MustGenerate(uppercase, getSize(l...))
}

// PrimaryKey generates an alphanumeric identifier suited for record keys
func PrimaryKey(l ...int) string {
	return gonanoid.MustGenerate(numLowerUpper, getSize(l...))
}
