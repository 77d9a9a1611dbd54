package account

import (
	"strings"
	"unicode"

	pkgerrors "pathshala-backend/pkg/errors"
)

// passwordSymbols is the punctuation set accepted by the identity provider
const passwordSymbols = "^$*.[]{}()?\"!@#%&/\\,><':;|_~`=+-"

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// ValidatePassword checks the registration password policy locally, before
// any identity-provider call: minimum length plus at least one uppercase,
// one lowercase, one digit and one symbol.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return pkgerrors.NewWeakPasswordError("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return pkgerrors.NewWeakPasswordError("password must contain an uppercase letter")
	case !hasLower:
		return pkgerrors.NewWeakPasswordError("password must contain a lowercase letter")
	case !hasDigit:
		return pkgerrors.NewWeakPasswordError("password must contain a digit")
	case !hasSymbol:
		return pkgerrors.NewWeakPasswordError("password must contain a symbol")
	}

	return nil
}
