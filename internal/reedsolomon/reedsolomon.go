// Package reedsolomon implements a systematic Reed-Solomon code over
// GF(2^8) with generator roots alpha^0 .. alpha^(nsym-1), decoding
// erasures only: the caller marks which codeword positions are missing
// and the decoder reconstructs them, it never searches for errors.
package reedsolomon

import (
	"errors"

	"github.com/tuomas-lb/auroralink/internal/gf256"
)

var (
	// ErrTooManyErasures indicates more erased positions than parity symbols.
	ErrTooManyErasures = errors.New("reedsolomon: erasures exceed parity budget")
	// ErrLengthMismatch indicates the codeword or erasure mask has the wrong length.
	ErrLengthMismatch = errors.New("reedsolomon: codeword length mismatch")
	// ErrMalformedCodeword indicates the erasure locator degenerated
	// (zero derivative at a root), which valid input cannot produce.
	ErrMalformedCodeword = errors.New("reedsolomon: malformed codeword")
)

// Encode appends nsym parity bytes to data. The data bytes are
// returned unchanged in the first len(data) positions; parity is the
// remainder of msg(x)*x^nsym divided by the generator polynomial,
// computed by synthetic division.
func Encode(data []byte, nsym int) []byte {
	gen := gf256.GeneratorPoly(nsym)
	out := make([]byte, len(data)+nsym)
	copy(out, data)

	for i := 0; i < len(data); i++ {
		coef := out[i]
		if coef == 0 {
			continue
		}
		// gen is monic; skip its leading term and fold the rest in,
		// highest degree first.
		for j := 1; j < len(gen); j++ {
			out[i+j] ^= gf256.Mul(gen[len(gen)-1-j], coef)
		}
	}

	copy(out, data)
	return out
}

// DecodeErasures recovers the k data bytes from a codeword of length
// k+nsym in which erased[i] marks position i as missing. Erased
// positions of received are ignored. Codeword position i corresponds
// to polynomial coefficient k+nsym-1-i.
func DecodeErasures(received []byte, erased []bool, k, nsym int) ([]byte, error) {
	n := k + nsym
	if len(received) != n || len(erased) != n {
		return nil, ErrLengthMismatch
	}

	// Polynomial coefficient indices of the erased positions.
	var positions []int
	for i, e := range erased {
		if e {
			positions = append(positions, n-1-i)
		}
	}
	if len(positions) > nsym {
		return nil, ErrTooManyErasures
	}

	// Received word as a polynomial, lowest degree first, with erased
	// coefficients zeroed.
	poly := make([]byte, n)
	for i, b := range received {
		if !erased[i] {
			poly[n-1-i] = b
		}
	}

	synd := make([]byte, nsym)
	allZero := true
	for j := 0; j < nsym; j++ {
		synd[j] = gf256.PolyEval(poly, gf256.Pow(2, j))
		if synd[j] != 0 {
			allZero = false
		}
	}
	if len(positions) == 0 || allZero {
		data := make([]byte, k)
		copy(data, received[:k])
		return data, nil
	}

	// Erasure locator: product of (1 + alpha^p x) over erased positions.
	loc := []byte{1}
	for _, p := range positions {
		loc = gf256.PolyMul(loc, []byte{1, gf256.Pow(2, p)})
	}

	// Evaluator: S(x)*Lambda(x) truncated to the erasure count.
	omega := gf256.PolyMul(synd, loc)
	if len(omega) > len(positions) {
		omega = omega[:len(positions)]
	}

	// Formal derivative of the locator; in characteristic 2 only the
	// odd-degree terms survive.
	deriv := make([]byte, len(loc))
	for j := 1; j < len(loc); j += 2 {
		deriv[j-1] = loc[j]
	}

	for _, p := range positions {
		x := gf256.Pow(2, p)
		xi := gf256.Inverse(x)
		d := gf256.PolyEval(deriv, xi)
		if d == 0 {
			return nil, ErrMalformedCodeword
		}
		mag := gf256.Div(gf256.Mul(x, gf256.PolyEval(omega, xi)), d)
		poly[p] ^= mag
	}

	data := make([]byte, k)
	for i := 0; i < k; i++ {
		data[i] = poly[n-1-i]
	}
	return data, nil
}
