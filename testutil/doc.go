// Package testutil provides testing utilities for kdgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points and computing exact
// nearest neighbors by linear scan as ground truth.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	point := make([]float64, 4)
//	rng.FillUniform(point) // uniform [0, 1)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceKNN(points, query, k, distance.SquaredL2)
package testutil
