package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumberValid_ValidNumbers(t *testing.T) {
	validNumbers := []string{
		"4916132996393639",
		"6011527216256475",
	}

	for _, number := range validNumbers {
		assert.True(t, IsCardNumberValid(number), "expected %s to be valid", number)
	}
}

func TestIsCardNumberValid_InvalidNumbers(t *testing.T) {
	invalidNumbers := []string{
		"4916132996393638", // wrong check digit
		"4961132996393639", // transposed digits
		"4916a32996393639", // letter inside
		"491613299639363x", // letter as check digit
		"",
		"   ",
	}

	for _, number := range invalidNumbers {
		assert.False(t, IsCardNumberValid(number), "expected %s to be invalid", number)
	}
}

func TestIsCvvValid(t *testing.T) {
	assert.True(t, IsCvvValid("123"))
	assert.True(t, IsCvvValid("4432"))
	assert.False(t, IsCvvValid("23"))
	assert.False(t, IsCvvValid("43242"))
	assert.False(t, IsCvvValid("23f"))
	assert.False(t, IsCvvValid(""))
}
