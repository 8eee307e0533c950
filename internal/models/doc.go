// Package models defines the core domain models for predictionsbetting.
//
// # Models
//
//   - Participant: a forecaster, identified by name
//   - Estimate: one participant's probability (0-100) for one proposition
//   - Proposition: a forecastable statement with a due date, an outcome and
//     one estimate per roster member
//   - Transfer: a directed amount from the loser of a pairwise comparison to
//     the winner, tagged with the payout method that produced it
//   - Settlement: net balance per participant derived from transfers
//   - Run: the archived summary of one batch evaluation
//
// # Design Principles
//
// 1. **Names as identity**: participants are plain strings, as in a roster file
// 2. **Immutable after parse**: propositions and estimates are never mutated by scoring
// 3. **Zero-sum**: every settlement built from transfers sums to zero
package models
