// Package fibonacci provides modular Fibonacci arithmetic: 2x2 matrix
// exponentiation over Z/mZ, F(n) mod m for 64-bit and arbitrary-precision
// moduli, and the Pisano period search.
//
// All functions are pure. The 64-bit paths use 128-bit intermediate products
// (math/bits) so every modulus up to 2^64-1 is handled exactly.
package fibonacci
