// Package lvtransport is an in-memory solver for the classic transportation
// problem: ship fixed supplies from m sources to fixed demands at n
// destinations at minimum total cost.
//
// What is inside:
//
//	matrix/         : dense row-major float64 matrix, validators, row/column sums, gonum interop
//	transport/      : balancing, least-cost start, degeneracy markers, MODI potentials,
//	                  stepping-stone loops, Solve / SolveBatch / Certify
//	internal/       : config (viper), logging (slog + lumberjack), report rendering
//	cmd/transport/  : command-line runner
//	examples/       : runnable scenarios
//
// Quick example (3 warehouses, 4 stores):
//
//	inst := transport.Instance{
//		Costs:  [][]float64{{5, 6, 8, 9}, {8, 4, 7, 5}, {5, 8, 3, 10}},
//		Supply: []float64{45, 35, 18},
//		Demand: []float64{26, 26, 10, 36},
//	}
//	res, err := transport.Solve(ctx, inst)
//	// res.InitialCost == 560, res.FinalCost == 500, len(res.Pivots) == 3
//
//	go get github.com/katalvlaran/lvtransport/transport
package lvtransport
