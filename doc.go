// Package bulwark turns a tower-defense map into a maximization problem:
// given a grid of spawn points, cores, and open ground, find the
// obstruction layout that forces attackers onto the longest possible
// route.
//
// 🚀 What is bulwark?
//
//	A deterministic path-length maximization engine built from four parts:
//		• grid/      — immutable tile layouts, obstruction sets, regions
//		• pathfind/  — budgeted longest-simple-path search + BFS shortest path
//		• placement/ — greedy block placement with a parallel candidate pool
//		• mapfile/   — JSON and HCL map documents, solved-layout annotation
//
// ✨ Why it works the way it does
//
//   - Longest simple path is NP-hard, so the finder is an anytime search:
//     it spends a node budget and returns the best route found, falling
//     back to the shortest path when nothing completed in time
//   - Every tie-break is a fixed (row, column) order, so identical inputs
//     and budgets produce identical plans — regardless of worker count
//   - Obstruction sets are copy-on-extend, letting one committed layout
//     fan out across a worker pool with no locks in the hot path
//
// The render/ subpackage draws finished plans as PNG frames, and
// cmd/bulwark wraps the whole pipeline into a CLI.
package bulwark
