// Package operator builds the dense complex matrices used as Hamiltonian
// terms by chip models. Tensor products follow the convention that the
// first factor is the most significant index.
package operator

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Destroy returns the lowering operator a of the given local dimension,
// with a[n-1,n] = sqrt(n).
func Destroy(dim int) *mat.CDense {
	a := mat.NewCDense(dim, dim, nil)
	for n := 1; n < dim; n++ {
		a.Set(n-1, n, complex(math.Sqrt(float64(n)), 0))
	}
	return a
}

// Create returns the raising operator, the conjugate transpose of Destroy.
func Create(dim int) *mat.CDense {
	return Dag(Destroy(dim))
}

// Number returns the occupation operator diag(0, 1, ..., dim-1).
func Number(dim int) *mat.CDense {
	n := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		n.Set(i, i, complex(float64(i), 0))
	}
	return n
}

// Identity returns the dim x dim identity.
func Identity(dim int) *mat.CDense {
	id := mat.NewCDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// TwoLevelProjector returns |0><0| + |1><1| in the given local dimension,
// the projector onto the computational subspace.
func TwoLevelProjector(dim int) *mat.CDense {
	p := mat.NewCDense(dim, dim, nil)
	for i := 0; i < 2 && i < dim; i++ {
		p.Set(i, i, 1)
	}
	return p
}

// Dag returns the conjugate transpose of a.
func Dag(a mat.CMatrix) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// Add returns a + b. Panics on shape mismatch.
func Add(a, b mat.CMatrix) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(mat.ErrShape)
	}
	out := mat.NewCDense(ar, ac, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			out.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return out
}

// Scale returns f * a.
func Scale(f complex128, a mat.CMatrix) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, f*a.At(i, j))
		}
	}
	return out
}

// Mul returns the matrix product a * b. Panics on shape mismatch.
func Mul(a, b mat.CMatrix) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(mat.ErrShape)
	}
	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Kron returns the tensor product a ⊗ b, a indexing the most
// significant factor.
func Kron(a, b mat.CMatrix) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			av := a.At(i, j)
			if av == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, av*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Expand embeds op, acting on the target sites, into the full lattice
// described by dims, with identity on every other site. Targets must be
// strictly ascending and op's dimension must equal the product of the
// target dimensions.
func Expand(op mat.CMatrix, targets []int, dims []int) (*mat.CDense, error) {
	opRows, opCols := op.Dims()
	if opRows != opCols {
		return nil, fmt.Errorf("operator is not square: %dx%d", opRows, opCols)
	}
	targetSet := make(map[int]struct{}, len(targets))
	prev := -1
	opDim := 1
	for _, t := range targets {
		if t < 0 || t >= len(dims) {
			return nil, fmt.Errorf("target %d is out of range for %d sites", t, len(dims))
		}
		if t <= prev {
			return nil, fmt.Errorf("targets must be strictly ascending, got %v", targets)
		}
		targetSet[t] = struct{}{}
		prev = t
		opDim *= dims[t]
	}
	if opDim != opRows {
		return nil, fmt.Errorf("operator dimension %d does not match target dimension %d", opRows, opDim)
	}
	total := 1
	for _, d := range dims {
		total *= d
	}
	out := mat.NewCDense(total, total, nil)
	rowDigits := make([]int, len(dims))
	colDigits := make([]int, len(dims))
	for i := 0; i < total; i++ {
		decompose(i, dims, rowDigits)
		for j := 0; j < total; j++ {
			decompose(j, dims, colDigits)
			identElsewhere := true
			for s := range dims {
				if _, ok := targetSet[s]; !ok && rowDigits[s] != colDigits[s] {
					identElsewhere = false
					break
				}
			}
			if !identElsewhere {
				continue
			}
			oi, oj := 0, 0
			for _, t := range targets {
				oi = oi*dims[t] + rowDigits[t]
				oj = oj*dims[t] + colDigits[t]
			}
			out.Set(i, j, op.At(oi, oj))
		}
	}
	return out, nil
}

func decompose(idx int, dims []int, digits []int) {
	for s := len(dims) - 1; s >= 0; s-- {
		digits[s] = idx % dims[s]
		idx /= dims[s]
	}
}

// EqualApprox reports whether a and b have the same shape and agree
// entrywise within tol.
func EqualApprox(a, b mat.CMatrix, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// IsHermitian reports whether a equals its conjugate transpose within tol.
func IsHermitian(a mat.CMatrix, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			if cmplx.Abs(a.At(i, j)-cmplx.Conj(a.At(j, i))) > tol {
				return false
			}
		}
	}
	return true
}
