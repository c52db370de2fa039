// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package vocab

import "math"

// Dims is the embedding width.
const Dims = 6

// Labels names each embedding axis. They appear only in explanations;
// scoring treats the axes as anonymous.
var Labels = [Dims]string{"locomotion", "energy", "expressiveness", "combat", "calm", "social"}

// Vector is a point in the hand-built concept space. Components lie in [0,1].
type Vector [Dims]float64

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Labeled maps each axis label to its component.
func (v Vector) Labeled() map[string]float64 {
	out := make(map[string]float64, Dims)
	for i, label := range Labels {
		out[label] = v[i]
	}
	return out
}

// Cosine returns the cosine similarity of a and b, floored at 0 and capped
// at 1. A zero vector on either side yields 0.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := a.Dot(b) / (na * nb)
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

// Mean returns the component-wise average, or the zero vector for no input.
func Mean(vs []Vector) Vector {
	var out Vector
	if len(vs) == 0 {
		return out
	}
	for _, v := range vs {
		for i := range out {
			out[i] += v[i]
		}
	}
	n := float64(len(vs))
	for i := range out {
		out[i] /= n
	}
	return out
}
