package gen

import "github.com/ojrac/opensimplex-go"

// Field is layered coherent noise: octaves of simplex noise at doubling
// frequency and halving amplitude, normalized back to roughly [-1, 1].
type Field struct {
	noise   opensimplex.Noise
	octaves int
}

func NewField(seed int64, octaves int) *Field {
	if octaves < 1 {
		octaves = 1
	}
	return &Field{noise: opensimplex.New(seed), octaves: octaves}
}

// At2 samples the field at (x, y).
func (f *Field) At2(x, y float64) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < f.octaves; i++ {
		sum += amp * f.noise.Eval2(x*freq, y*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}

// At1 samples a one-dimensional slice of the field.
func (f *Field) At1(x float64) float64 {
	return f.At2(x, 0.5)
}
