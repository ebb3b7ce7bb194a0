/*
Package codec implements KERI's wire framing: the fixed-width version
string, the three supported serializations, and the two-pass sizing
procedure ("sizeify") used by every event and receipt kind.

# Version string

	KERI10JSON000150_
	KERI  10  JSON  000150  _
	tag   ver kind  size    term

Fixed width (17 bytes) regardless of the actual size value, which is what
lets Sizeify patch the size digits in place after a single marshal pass
rather than needing to re-serialize.

# Grounding

The version string sniff is a regexp byte scan rather than a structured
parse, deliberately: the string is a known ASCII literal embedded in the
serialized bytes whatever the outer container is (JSON, CBOR, MsgPack), so
scanning for it is both encoding-agnostic and avoids a chicken-and-egg
problem of needing to pick a decoder before knowing which one produced the
bytes.
*/
package codec
