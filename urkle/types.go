package urkle

import "errors"

// HashBytes is the fixed width of hashes and values used by the exclusion trie.
const HashBytes = 32

// LeafOrdinalBytes is the byte width used to encode leafOrdinal in proofs and leaf hashes.
const LeafOrdinalBytes = 4

// LeafRecordBytes is the fixed byte width of a leaf table record: key_be8 || valueBytes[32].
const LeafRecordBytes = 8 + HashBytes

// NodeRecordBytes is the fixed byte width of a node store record.
// See `noderecord.go` for the field layout.
const NodeRecordBytes = 64

// Ref is a node-store record index.
type Ref uint32

const NoRef = ^Ref(0)

type NodeKind uint8

const (
	KindLeaf   NodeKind = 1
	KindBranch NodeKind = 2
)

var (
	ErrBadHashSize           = errors.New("urkle: hasher output must be 32 bytes")
	ErrBadValueSize          = errors.New("urkle: valueBytes must be 32 bytes")
	ErrLeafTableBadSize      = errors.New("urkle: leaf table buffer size invalid")
	ErrNodeStoreBadSize      = errors.New("urkle: node store buffer size invalid")
	ErrOutOfOrderKey         = errors.New("urkle: key out of order")
	ErrDuplicateKey          = errors.New("urkle: duplicate key")
	ErrInvalidNodeKind       = errors.New("urkle: invalid node kind")
	ErrInvalidBranchBit      = errors.New("urkle: invalid branch bit")
	ErrInvalidSubtreeSize    = errors.New("urkle: invalid subtree size")
	ErrInvalidRightSpan      = errors.New("urkle: invalid right span")
	ErrInvalidLeafOrdinal    = errors.New("urkle: invalid leaf ordinal")
	ErrLeafCountDoesNotFit32 = errors.New("urkle: leafCount does not fit in uint32")

	ErrEmptyTrie             = errors.New("urkle: empty trie")
	ErrKeyPresent            = errors.New("urkle: key present")
	ErrVerifyExclusionFailed = errors.New("urkle: verify exclusion failed")
)
