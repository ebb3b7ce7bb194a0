/*
Package crypter implements the cryptographic vocabulary a KERI node needs:
qualified key material and digests (Matter/Verfer/Diger), signatures both
indexed (Siger, for controlling-key signatures over an event) and
unindexed-but-paired (Cigar, for witness receipt couplets), next-key
commitments (Nexter), and signing threshold arithmetic (Tholder).

# Grounding

Type names and roles (Verfer, Diger, Siger, Cigar, Nexter, Tholder) follow
keripy's core/coring.py and core/eventing.py exactly, down to which type
pairs with which (a Cigar always carries its own Verfer; a Siger always
carries an index into the event's own key list). Ed25519 verification uses
crypto/ed25519; digesting uses lukechampine.com/blake3 for the default
algorithm and crypto/sha256 for interoperability with events produced by
other implementations that default to SHA-256.
*/
package crypter
