package dither

// Tap is one neighbour which receives a share of the quantization error.
// Offsets point either to the right on the current row or to a row below.
type Tap struct {
	DX, DY int
	Weight int
}

// Kernel is an error diffusion matrix. Every tap gets Weight/Divisor of the
// error. The weights do not always add up to the divisor.
type Kernel struct {
	Divisor int
	Taps    []Tap
}

var kernels = map[Method]Kernel{
	//      X   7
	//  3   5   1
	FloydSteinberg: {
		Divisor: 16,
		Taps: []Tap{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
	},

	//          X   7   5
	//  3   5   7   5   3
	//  1   3   5   3   1
	JarvisJudiceNinke: {
		Divisor: 48,
		Taps: []Tap{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
	},

	//          X   8   4
	//  2   4   8   4   2
	//  1   2   4   2   1
	Stucki: {
		Divisor: 42,
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
	},

	// Only 6/8 of the error is spread.
	//
	//      X   1   1
	//  1   1   1
	//      1
	Atkinson: {
		Divisor: 8,
		Taps: []Tap{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
	},
}

// Standard 8x8 Bayer ordering, values 0..63.
var bayer8x8 = [8][8]float32{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// bayerThresholds centers the Bayer matrix around zero and scales it by
// strength. With strength 1 the values are in [-32, 31].
func bayerThresholds(strength float32) [8][8]float32 {
	var out [8][8]float32
	for y := range bayer8x8 {
		for x := range bayer8x8[y] {
			out[y][x] = (bayer8x8[y][x]/64 - 0.5) * strength * 64
		}
	}
	return out
}
