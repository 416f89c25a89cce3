package assemble

// DefaultTokenDivisor is the fixed character-per-token ratio used for
// budget reporting. Exact tokenization is not required here; the
// downstream generation collaborator enforces real limits.
const DefaultTokenDivisor = 4

// EstimateTokens approximates the token count of text as characters
// divided by a fixed divisor.
func EstimateTokens(text string, divisor int) int {
	if divisor <= 0 {
		divisor = DefaultTokenDivisor
	}
	if text == "" {
		return 0
	}
	tokens := len(text) / divisor
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
