// Package topology answers connectivity questions about a half-edge mesh:
// how many face islands it has, how many boundary loops, its Euler number
// and genus, and whether it is a topological disk.
//
// What:
//
//   - Components: faces grouped by flood fill across paired edges.
//   - Analyze: a Topology summary (ConnectedCount, BoundaryCount,
//     EulerNumber, Genus) with IsConnected / IsClosed / IsDisk predicates.
//
// Why:
//
//   - Only disk-shaped charts can be flattened by a conformal map; every
//     other chart falls back to a projection and is reported invalid.
//
// Complexity:
//
//   - Components: O(F·k), Memory: O(F).
//   - Analyze:    O(V·r + E + F·k), Memory: O(E + F).
//
// Detached (ignored) faces take no part in any count. Vertices are counted
// once per colocal ring and only when some linked face references them.
package topology
