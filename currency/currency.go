package currency

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// ETH represents the ethereum currency.
	ETH              = "ETH"
	ether            = 1e18 // ether is the unit used for string representation of ETH.
	etherDecimals    = 18
	ethPlacesToRound = 6
)

// Parser converts amounts between their string representation and the base
// unit of a currency.
type Parser interface {
	Parse(string) (*big.Int, error)
	Print(*big.Int) string
	// PrintExact is like Print, without rounding and without trailing zeros.
	PrintExact(*big.Int) string
}

var currencies map[string]Parser

func init() {
	currencies = make(map[string]Parser)

	ethMultiplier := decimal.NewFromFloat(ether)
	currencies[ETH] = ethParser{multiplier: ethMultiplier, decimals: etherDecimals, placesToRound: ethPlacesToRound}
}

// IsSupported checks if there is parser regsitered for the currency
// represented by the given string.
func IsSupported(currency string) bool {
	p, ok := currencies[currency]
	return ok && p != nil
}

// NewParser returns the currency parser. It returns nil if unsupported currency is used.
// so check if exists before usage.
func NewParser(currency string) Parser {
	return currencies[currency]
}

// PrintFee returns the fee in base units as an amount of the currency followed
// by its symbol, for example "0.000021 ETH". Fees are not rounded, as fees on
// local networks are often below the rounding precision. It returns an empty string if the
// fee is nil or the currency is unsupported.
func PrintFee(currency string, fee *big.Int) string {
	p := NewParser(currency)
	if fee == nil || p == nil {
		return ""
	}
	return p.PrintExact(fee) + " " + currency
}

type ethParser struct {
	multiplier    decimal.Decimal
	decimals      int32
	placesToRound int32
}

// Parse parses the given currency string in Ether, converts it to Wei and returns a
// big.Int representation of the value.
// It can parse decimal values upto 1e-18 (equivalent of 1e-18 and the minimum value of
// the currency) and convert it to corresponding amount in Wei without loss of accuracy.
func (p ethParser) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}

	amountBaseUnit := amount.Mul(p.multiplier)
	if amountBaseUnit.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.New("amount is too small, should be larger than 1e-18")
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in Wei to Ether and returns a string representation of it.
// The returned string is rounded off to 6 decimal places for visual representation.
func (p ethParser) Print(input *big.Int) string {
	amount := decimal.NewFromBigInt(input, 0)
	return amount.Div(p.multiplier).StringFixedBank(p.placesToRound)
}

// PrintExact converts the input in Wei to Ether without loss of precision.
func (p ethParser) PrintExact(input *big.Int) string {
	return decimal.NewFromBigInt(input, -p.decimals).String()
}
