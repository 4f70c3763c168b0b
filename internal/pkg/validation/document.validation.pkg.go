package validation

import (
	"partner-funnel/internal/pkg/helper"

	"github.com/go-playground/validator/v10"
)

// IsValidCPF checks length and both check digits of a CPF, ignoring
// punctuation. Sequences of a single repeated digit are rejected.
func IsValidCPF(raw string) bool {
	cpf := helper.OnlyDigits(raw)
	if len(cpf) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return cpfDigit(cpf[:9], 10) == int(cpf[9]-'0') &&
		cpfDigit(cpf[:10], 11) == int(cpf[10]-'0')
}

func cpfDigit(base string, weight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (weight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// IsValidPhoneBR accepts 10 or 11 digits (area code + number).
func IsValidPhoneBR(raw string) bool {
	phone := helper.OnlyDigits(raw)
	return len(phone) == 10 || len(phone) == 11
}

func validateCPF(fl validator.FieldLevel) bool {
	return IsValidCPF(fl.Field().String())
}

func validatePhoneBR(fl validator.FieldLevel) bool {
	return IsValidPhoneBR(fl.Field().String())
}
