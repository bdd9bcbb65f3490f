// Package balance assigns a day of the week to every weekly and biweekly
// task so that per-day effort is balanced and tasks sharing a room land on
// the same day.
//
// The assignment is a greedy longest-processing-time bin packing over room
// groups: heaviest group first, each onto the currently lightest available
// day. It is a heuristic, not an optimal balance.
package balance
