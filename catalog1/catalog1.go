// Package catalog1 implements the "catalog1" locality-sensitive signature
// scheme used to approximate similarity between reversed-function bodies.
//
// A signature is a fixed-length vector of uint32 coordinates produced by
// MinHashing the set of 4-byte sliding windows of a body against a
// deterministic family of linear permutations of the 32-bit domain. Two
// bodies whose window sets have Jaccard similarity J are expected to agree
// in a J fraction of their signature coordinates.
package catalog1

// WindowSize is the number of bytes read per sliding window when building
// the shingle set that feeds MinHash.
const WindowSize = 4

// MinNumPerms is the smallest signature length this package will produce.
// A signature of length zero carries no similarity information.
const MinNumPerms = 1
