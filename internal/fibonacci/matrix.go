package fibonacci

import "math/bits"

// Matrix is a 2x2 matrix of residues. Entries are kept reduced below the
// modulus they were produced with.
type Matrix [2][2]uint64

var (
	// Identity is the multiplicative identity.
	Identity = Matrix{{1, 0}, {0, 1}}

	// QMatrix is the Fibonacci Q-matrix [[1,1],[1,0]]. Its k-th power is
	// [[F(k+1), F(k)], [F(k), F(k-1)]].
	QMatrix = Matrix{{1, 1}, {1, 0}}
)

// mulMod returns a*b mod m without overflow. Requires m > 0.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// addMod returns (a+b) mod m for a, b < m.
func addMod(a, b, m uint64) uint64 {
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}

// Reduce returns a copy of a with every entry reduced modulo mod.
func (a Matrix) Reduce(mod uint64) Matrix {
	return Matrix{
		{a[0][0] % mod, a[0][1] % mod},
		{a[1][0] % mod, a[1][1] % mod},
	}
}

// MulMod returns the product a*b with each entry reduced modulo mod.
// Both operands must already be reduced. mod must be positive.
func (a Matrix) MulMod(b Matrix, mod uint64) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = addMod(mulMod(a[i][0], b[0][j], mod), mulMod(a[i][1], b[1][j], mod), mod)
		}
	}
	return r
}

// PowMod computes a^power mod mod by square-and-multiply, starting from the
// identity and halving the exponent each step. It performs O(log power)
// matrix multiplications. mod must be positive.
func (a Matrix) PowMod(power, mod uint64) Matrix {
	result := Identity.Reduce(mod)
	base := a.Reduce(mod)
	for power > 0 {
		if power&1 == 1 {
			result = result.MulMod(base, mod)
		}
		base = base.MulMod(base, mod)
		power >>= 1
	}
	return result
}
