/*
Package cose is a trimmed COSE_Sign1 wrapper used as the wire envelope for
validator receipts (vrc). Grounded on the teacher's massifs/cose package,
with the ECDSA/RSA key-provider machinery and CWT/DID claim parsing
removed: a vrc has no issuer/subject claims and is always Ed25519.
*/
package cose
