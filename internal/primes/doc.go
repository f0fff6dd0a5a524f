// Package primes provides the primality test used to validate batch input
// and the generator that produces the first N primes for export.
package primes
