package server

import (
	"golang.org/x/exp/constraints"

	"schrodinger/model"
	"schrodinger/wavefunction"
)

const levels = 255

// 第一步先将数据量化为 0..255，再对连续相同的值做游程编码
func quantize[T constraints.Float](dst []byte, data []T, peak T) []byte {
	dst = dst[:0]
	for _, v := range data {
		q := 0
		if peak > 0 {
			q = int(v/peak*levels + 0.5)
		}
		dst = append(dst, byte(clamp(q, 0, levels)))
	}
	return dst
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// runLength encodes data as (level, run) pairs, runs never longer than 255.
func runLength(data []byte) []byte {
	res := make([]byte, 0, 64)
	index := 0
	for index < len(data) {
		start := data[index]
		length := 0
		for index < len(data) && data[index] == start && length < 255 {
			index++
			length++
		}
		res = append(res, start, byte(length))
	}
	return res
}

// encodeDensity builds the wire form of |ψ|².
func encodeDensity(psi []complex128) model.Encoding {
	density := wavefunction.Density(nil, psi)
	peak := 0.0
	for _, v := range density {
		if v > peak {
			peak = v
		}
	}
	return model.Encoding{
		Max:  peak,
		Data: runLength(quantize(nil, density, peak)),
	}
}

// decode expands an encoding back to densities, exact up to quantization.
func decode(src model.Encoding) []float64 {
	res := make([]float64, 0)
	for i := 0; i+1 < len(src.Data); i += 2 {
		v := float64(src.Data[i]) / levels * src.Max
		for n := 0; n < int(src.Data[i+1]); n++ {
			res = append(res, v)
		}
	}
	return res
}

func buildFrame(step int, time, norm float64, rows, cols int, psi []complex128) model.Frame {
	return model.Frame{
		Step:    step,
		Time:    time,
		Norm:    norm,
		Rows:    rows,
		Cols:    cols,
		Density: encodeDensity(psi),
	}
}
