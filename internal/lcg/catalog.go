package lcg

// Table 1 (spec §4.6): the sixteen catalog LCG variants, as
// (name, M, C, N, seed, a, b).
type spec struct {
	name       string
	m, c, n    uint64
	seed       uint64
	a, b       int
}

var catalogTable = []spec{
	{"LCG: ANSI C", 1103515245, 12345, 1 << 31, 12345, 16, 30},
	{"LCG: Borland C++ lrand", 22695477, 1, 1 << 32, 12345, 0, 30},
	{"LCG: Borland C++ rand", 22695477, 1, 1 << 32, 12345, 16, 30},
	{"LCG: C99/C11", 1103515245, 12345, 1 << 32, 12345, 16, 30},
	{"LCG: glibc", 69069, 1, 1 << 32, 12345, 0, 31},
	{"LCG: glibc revised", 1103515245, 12345, 1 << 31, 12345, 0, 30},
	{"LCG: Java", 25214903917, 11, 1 << 48, 12345, 16, 47},
	{"LCG: MS Visual Basic", 1140671485, 12820163, 1 << 24, 12345, 0, 23},
	{"LCG: MS Visual C++", 214013, 2531011, 1 << 32, 12345, 16, 30},
	{"LCG: MINSTD", 16807, 0, (1 << 31) - 1, 12345, 0, 30},
	{"LCG: MINSTD revised", 48271, 0, (1 << 31) - 1, 12345, 0, 30},
	{"LCG: Native API", 2147483629, 2147483587, (1 << 31) - 1, 12345, 0, 30},
	{"LCG: Numerical Recipes", 1664525, 1013904223, 1 << 32, 0, 0, 31},
	{"LCG: RANDU", 65539, 0, 1 << 31, 1, 0, 30},
	{"LCG: RANF", 44485709377909, 0, 1 << 48, 1, 0, 47},
	{"LCG: Sinclair ZX81", 75, 0, 65537, 1, 0, 16},
}

// NewCatalog builds one fresh Generator per Table 1 entry, in table order.
func NewCatalog() ([]*Generator, error) {
	gens := make([]*Generator, 0, len(catalogTable))
	for _, s := range catalogTable {
		g, err := New(s.name, s.m, s.c, s.n, s.seed, s.a, s.b)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, nil
}

// CatalogNames returns the Table 1 entry names in table order.
func CatalogNames() []string {
	names := make([]string, len(catalogTable))
	for i, s := range catalogTable {
		names[i] = s.name
	}
	return names
}
