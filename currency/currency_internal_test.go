package currency

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Registry(t *testing.T) {
	t.Run("happy", func(t *testing.T) {
		assert.True(t, IsSupported(ETH))
		assert.NotNil(t, NewParser(ETH))
	})

	t.Run("error_nil_parser", func(t *testing.T) {
		testCurrency := "nil_parser_for_test"
		currencies[testCurrency] = nil
		t.Cleanup(func() {
			delete(currencies, testCurrency)
		})

		assert.False(t, IsSupported(testCurrency))
		assert.Empty(t, PrintFee(testCurrency, big.NewInt(1)))
	})
}
