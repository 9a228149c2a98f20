package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePostcode(t *testing.T) {
	t.Run("FullAddress", func(t *testing.T) {
		assert.Equal(t, "SW1A 1AA", DerivePostcode("Buckingham Palace, London SW1A 1AA"))
	})

	t.Run("Lowercase", func(t *testing.T) {
		assert.Equal(t, "M1 1AE", DerivePostcode("12 oak street, manchester m1 1ae"))
	})

	t.Run("NoSeparator", func(t *testing.T) {
		assert.Equal(t, "LS2 9AB", DerivePostcode("5 Park Row, Leeds LS29AB"))
	})

	t.Run("MidAddress", func(t *testing.T) {
		assert.Equal(t, "B33 8TH", DerivePostcode("Flat 2, B33 8TH, Birmingham, UK"))
	})

	t.Run("NoPostcode", func(t *testing.T) {
		assert.Equal(t, "", DerivePostcode("221B Baker Street"))
	})

	t.Run("EmptyAddress", func(t *testing.T) {
		assert.Equal(t, "", DerivePostcode(""))
	})
}
