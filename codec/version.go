package codec

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind identifies a KERI serialization encoding.
type Kind int

const (
	KindJSON Kind = iota
	KindCBOR
	KindMGPK
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "JSON"
	case KindCBOR:
		return "CBOR"
	case KindMGPK:
		return "MGPK"
	default:
		return "????"
	}
}

// ParseKind maps a 4 character version-string token to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "JSON":
		return KindJSON, nil
	case "CBOR":
		return KindCBOR, nil
	case "MGPK":
		return KindMGPK, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// ProtocolTag is the 4 character protocol identifier carried in every
// version string. This node only ever produces and accepts "KERI".
const ProtocolTag = "KERI"

// Major is the protocol major version this node speaks. Events whose
// version string names a different major are rejected: the wire format is
// not assumed compatible across majors.
const Major = 1

// Minor is the protocol minor version this node produces. Minor mismatches
// on input are tolerated: minor bumps are additive.
const Minor = 0

// VersionStringSize is the fixed width, in bytes, of a version string:
//
//	KERI   10   JSON  000150 _
//	4      2    4     6      1  = 17
const VersionStringSize = 4 + 2 + 4 + 6 + 1

// versionRe matches a version string anywhere in the leading bytes of a
// frame. It is deliberately encoding-agnostic: the version string is always
// an ASCII literal embedded in the serialized bytes regardless of whether
// the outer container is JSON, CBOR, or MessagePack, so a byte scan finds
// it without first decoding the container.
var versionRe = regexp.MustCompile(`KERI([0-9a-fA-F]{2})(JSON|CBOR|MGPK)([0-9a-fA-F]{6})_`)

// sniffWindow bounds how far into a frame we search for the version string.
// Every event kind places "v" as its first field, so in practice the match
// occurs within the first ~24 bytes; this window is generous headroom for
// CBOR/MsgPack map-length prefixes.
const sniffWindow = 128

// Version is a wire protocol major.minor pair.
type Version struct {
	Major int
	Minor int
}

// FindVersionString locates the version string within buf and returns its
// byte offset, parsed Version, Kind, and declared frame size.
func FindVersionString(buf []byte) (offset int, v Version, kind Kind, size int, err error) {
	end := len(buf)
	if end > sniffWindow {
		end = sniffWindow
	}
	loc := versionRe.FindSubmatchIndex(buf[:end])
	if loc == nil {
		return 0, Version{}, 0, 0, ErrNoVersionString
	}
	major, err := strconv.ParseInt(string(buf[loc[2]:loc[3]])[:1], 16, 16)
	if err != nil {
		return 0, Version{}, 0, 0, fmt.Errorf("%w: major", ErrBadVersionString)
	}
	minor, err := strconv.ParseInt(string(buf[loc[2]:loc[3]])[1:], 16, 16)
	if err != nil {
		return 0, Version{}, 0, 0, fmt.Errorf("%w: minor", ErrBadVersionString)
	}
	kind, err = ParseKind(string(buf[loc[4]:loc[5]]))
	if err != nil {
		return 0, Version{}, 0, 0, err
	}
	n, err := strconv.ParseInt(string(buf[loc[6]:loc[7]]), 16, 64)
	if err != nil {
		return 0, Version{}, 0, 0, fmt.Errorf("%w: size", ErrBadVersionString)
	}
	return loc[0], Version{Major: int(major), Minor: int(minor)}, kind, int(n), nil
}

// MakeVersionString renders the fixed-width version string for v, kind and
// size. size must fit in 6 hex digits (16 MiB); larger sizes are rejected
// here with ErrSizeMismatch.
func MakeVersionString(v Version, kind Kind, size int) (string, error) {
	if v.Major < 0 || v.Major > 15 || v.Minor < 0 || v.Minor > 15 {
		return "", ErrBadVersionString
	}
	if size < 0 || size > 0xFFFFFF {
		return "", ErrSizeMismatch
	}
	return fmt.Sprintf("%s%x%x%s%06x_", ProtocolTag, v.Major, v.Minor, kind.String(), size), nil
}

// PlaceholderVersionString returns a version string of the correct width
// whose size field is all zeros, for use as the "v" value on the first
// marshal pass of Sizeify.
func PlaceholderVersionString(kind Kind) string {
	s, _ := MakeVersionString(Version{Major: Major, Minor: Minor}, kind, 0)
	return s
}
