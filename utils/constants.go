// File: utils/constants.go
package utils

// QuoteSessionPrefix is the prefix used for Redis availability-quote session keys.
const QuoteSessionPrefix = "quote:"
