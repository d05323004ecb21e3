// Package astar provides a generic, step-wise A* search engine that keeps
// every minimal-cost predecessor of a node, not just one.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time, to stop early, drive
//     UIs or drain the whole graph and then enumerate all tied shortest paths.
//
// The library is generic over node, key, edge and cost types. Graphs supply
// neighbors lazily as an iterator and may implement NodeVisitor or EdgeVisitor
// to observe the search. The engine is single-threaded and performs no I/O.
package astar
