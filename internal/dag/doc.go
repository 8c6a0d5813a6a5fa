// Package dag models the dependencies between variables as a directed graph.
//
// An edge a -> b means b depends on a: a modifier of b reads a. A rule set is
// only valid if the graph is acyclic, in which case TopologicalOrder yields an
// order in which every variable can be computed after everything it reads.
package dag
