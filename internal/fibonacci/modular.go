package fibonacci

import (
	"errors"
	"math/big"
	"math/bits"
)

// ErrInvalidModulus is returned when a modulus is zero, negative or nil.
var ErrInvalidModulus = errors.New("modulus must be positive")

// FibonacciMod computes F(n) mod m with the matrix identity
//
//	[[1,1],[1,0]]^(n-1) = [[F(n), F(n-1)], [F(n-1), F(n-2)]]
//
// and returns the top-left entry. F(0) is 0 for every modulus.
func FibonacciMod(n, m uint64) (uint64, error) {
	if m == 0 {
		return 0, ErrInvalidModulus
	}
	if n == 0 {
		return 0, nil
	}
	return QMatrix.PowMod(n-1, m)[0][0], nil
}

// FibonacciModBig computes F(n) mod m for an arbitrary-precision modulus
// using the fast doubling algorithm. Memory usage is O(log(m)) regardless
// of n.
//
// Uses the identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))  mod m
//	F(2k+1) = F(k+1)² + F(k)²            mod m
func FibonacciModBig(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}

	if n == 0 {
		return big.NewInt(0), nil
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// t1 = F(2k); Mod is Euclidean in math/big, so it is never negative.
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mod(t1, m)
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		// t2 = F(2k+1)
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}

	// m == 1 leaves fk at zero through the loop, so no final reduction is needed.
	return fk, nil
}

// FibonacciModAny computes F(n) mod m, using the matrix form when m fits in
// 64 bits and fast doubling otherwise.
func FibonacciModAny(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if m.IsUint64() {
		v, err := FibonacciMod(n, m.Uint64())
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(v), nil
	}
	return FibonacciModBig(n, m)
}
