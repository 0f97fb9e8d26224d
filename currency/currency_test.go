package currency_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/direct-state-transfer/gasless/currency"
)

func Test_ETH_Parse(t *testing.T) {
	require.True(t, currency.IsSupported(currency.ETH))
	p := currency.NewParser(currency.ETH)

	t.Run("happy", func(t *testing.T) {
		got, err := p.Parse("0.000021")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(21e12), got)

		got, err = p.Parse("0.000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1), got)
	})
	t.Run("error_invalid_string", func(t *testing.T) {
		_, err := p.Parse("abc")
		assert.Error(t, err)
	})
	t.Run("error_too_small", func(t *testing.T) {
		_, err := p.Parse("0.0000000000000000001")
		assert.Error(t, err)
	})
}

func Test_ETH_Print(t *testing.T) {
	p := currency.NewParser(currency.ETH)
	assert.Equal(t, "0.000021", p.Print(big.NewInt(21e12)))
	assert.Equal(t, "1.000000", p.Print(big.NewInt(1e18)))
	assert.Equal(t, "0.000000", p.Print(big.NewInt(1)))
}

func Test_PrintFee(t *testing.T) {
	assert.Equal(t, "0.000021 ETH", currency.PrintFee(currency.ETH, big.NewInt(21e12)))
	assert.Equal(t, "0.000000000000000001 ETH", currency.PrintFee(currency.ETH, big.NewInt(1)))
	assert.Equal(t, "0 ETH", currency.PrintFee(currency.ETH, big.NewInt(0)))
	assert.Empty(t, currency.PrintFee(currency.ETH, nil))
	assert.Empty(t, currency.PrintFee("DOGE", big.NewInt(1)))
}
