// Package planner turns a list of source files and a compiled RuleSet into
// an ordered plan of moves.
//
// Planning has two phases. Descriptors are built first: in a bounded pool of
// workers when a hash rule makes content hashing necessary, synchronously
// otherwise. Resolution then runs on the calling goroutine only, one file at
// a time, because hash rules share a single DedupTracker. Nothing is moved;
// a plan is always complete before any execution starts.
//
// Which of two identical files counts as the original depends on the order
// files are resolved in. By default that is the order hashing finished,
// which varies between runs when several workers are used. Setting
// DeterministicDedup resolves in input order instead. The plan itself is
// always emitted in input order.
package planner
