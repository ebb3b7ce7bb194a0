// Package mmr is the accumulator felog builds over one identifier's
// first-seen (fn ordered) event digests.
//
// It keeps a Merkle Mountain Range: a strictly append-only binary structure
// whose post-order traversal (children before parents, left to right)
// matches the natural append order of its nodes. That coincidence is what
// lets every operation here navigate the tree from a bare node index using
// only binary arithmetic, never materializing (or even knowing the shape
// of) the whole tree.
//
//	3              14
//	             /    \
//	            /      \
//	2        6            13           21
//	       /   \        /    \
//	1     2     5      9     12     17     20     24
//	     / \   / \    / \   /  \   /  \
//	0   0   1 3   4  7   8 10  11 15  16 18  19 22  23   25
//
// felog only ever needs one proof shape: inclusion of a leaf against the
// tree's single "bagged" root (all peaks folded together into one hash), so
// that is the only proof this package produces. The consistency-proof and
// unbagged-accumulator variants a general purpose MMR library would also
// carry are not implemented here; felog never needs to show that one root
// extends another, only that a leaf belongs under the current one.
//
// IndexHeight is the function everything else is built from: the height, in
// the binary tree above, of the node at postorder position i. Positions are
// one-based; indices (as felog and the Log interface use them) are
// position-1.
package mmr
