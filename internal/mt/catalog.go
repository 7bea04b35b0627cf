package mt

// NewMT19937 builds the 32-bit Mersenne Twister, grounded on the
// word-level recurrence in gonum/gonum's mathext/prng/mt19937.go,
// generalized to this package's parameterized form.
func NewMT19937() (*Generator, error) {
	return New(
		"MT19937", 32, 624, 397, 31, 0x9908B0DF,
		Tempering{U: 11, D: 0xFFFFFFFF, S: 7, B: 0x9D2C5680, T: 15, C: 0xEFC60000, L: 18},
		1812433253, 5489,
	)
}

// NewMT19937_64 builds the 64-bit Mersenne Twister variant.
func NewMT19937_64() (*Generator, error) { //nolint:revive,stylecheck // catalog name matches spec Table naming
	return New(
		"MT19937-64", 64, 312, 156, 31, 0xB5026F5AA96619E9,
		Tempering{U: 29, D: 0x5555555555555555, S: 17, B: 0x71D67FFFEDA60000, T: 37, C: 0xFFF7EEE000000000, L: 43},
		6364136223846793005, 5489,
	)
}

// NewCatalog builds the two catalog MT instances in spec order.
func NewCatalog() ([]*Generator, error) {
	mt32, err := NewMT19937()
	if err != nil {
		return nil, err
	}
	mt64, err := NewMT19937_64()
	if err != nil {
		return nil, err
	}
	return []*Generator{mt32, mt64}, nil
}
