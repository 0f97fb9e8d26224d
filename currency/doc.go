// Package currency implements conversion backends for the currencies in which
// network fees are paid.
//
// Use IsSupported to check if the currency is supported and
// NewParser to obtain a parser for that currency.
package currency
