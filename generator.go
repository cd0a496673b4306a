package phoneAuth

import "github.com/MrEthical07/phoneAuth/internal"

// cryptoGenerator is the production CodeGenerator: uniform decimal
// digits from crypto/rand.
type cryptoGenerator struct {
	digits int
}

// Generate describes the generate operation and its observable behavior.
func (g cryptoGenerator) Generate() (string, error) {
	return internal.NewOTP(g.digits)
}
