package store

import "fmt"

// PrefixSnKey builds the "(prefix, sn)" compound key shared by KE and every
// escrow table: a lowercase hex sequence number separated from the prefix
// by '|', a byte that never appears in a qualified base64 prefix.
func PrefixSnKey(prefix string, sn uint64) []byte {
	return []byte(fmt.Sprintf("%s|%x", prefix, sn))
}

// PrefixSnDigestKey builds the "(prefix, sn, d)" compound key URES uses to
// track an unreceipted event by the specific digest a receipt couplet named.
func PrefixSnDigestKey(prefix string, sn uint64, digest string) []byte {
	return []byte(fmt.Sprintf("%s|%x|%s", prefix, sn, digest))
}
