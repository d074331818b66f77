// Package engine computes how a group that split a shared cost unevenly
// should settle up.
//
// The engine has two halves, both pure functions over immutable input:
//
//   - ComputeBalances turns per-participant contributions and a total cost
//     into signed net balances (contributed minus equal fair share).
//   - Settle turns balances into an ordered list of point-to-point
//     transfers that bring every balance to zero.
//
// SettleContributions composes the two. All amounts are integer cents
// (see Cents); shopspring/decimal is used only to convert to and from
// display amounts at the boundary. The matcher is a greedy largest-first
// heuristic, not a minimum-transaction solver.
package engine
