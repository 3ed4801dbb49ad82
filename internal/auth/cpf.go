package auth

import "strings"

// NormalizeCPF strips every non-digit character from a CPF string.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF checks the two verification digits of a Brazilian CPF.
// Accepts formatted input (dots and dash are ignored).
func ValidateCPF(cpf string) bool {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return false
	}

	nums := make([]int, 11)
	allEqual := true
	for i, r := range digits {
		nums[i] = int(r - '0')
		if nums[i] != nums[0] {
			allEqual = false
		}
	}
	// CPFs with a single repeated digit pass the checksum but are invalid.
	if allEqual {
		return false
	}

	if nums[9] != checkDigit(nums[:9], 10) {
		return false
	}
	return nums[10] == checkDigit(nums[:10], 11)
}

func checkDigit(nums []int, weight int) int {
	sum := 0
	for _, n := range nums {
		sum += n * weight
		weight--
	}
	return (sum * 10 % 11) % 10
}
