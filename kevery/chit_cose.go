package kevery

import (
	"crypto/ed25519"
	"fmt"

	"github.com/datatrails/go-datatrails-keri/cose"
)

// SealChitCOSE wraps a validator receipt's sealed digest in a COSE_Sign1
// envelope for relaying a vrc to a peer over a transport that isn't the raw
// CESR event stream, such as a direct push to a watcher. The stream path is
// unaffected: Ingest still verifies vrc frames via their inline indexed
// Siger attachment, and this is an additional courier format for the same
// receipt rather than a replacement for it. ondex is the signer's position
// in the prior (outgoing) key list, or -1 if the chit was signed by a
// current key.
func SealChitCOSE(priv ed25519.PrivateKey, index, ondex int, sealedDigest []byte) ([]byte, error) {
	msg, err := cose.NewCoseSign1Message()
	if err != nil {
		return nil, fmt.Errorf("kevery: %w", err)
	}
	msg.Payload = sealedDigest
	if err := msg.SignEd25519(priv, nil, index, ondex); err != nil {
		return nil, fmt.Errorf("kevery: %w", err)
	}
	raw, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("kevery: %w", err)
	}
	return raw, nil
}

// OpenChitCOSE verifies a COSE-sealed chit against pub and returns the
// sealed digest and the signer's recorded key index, ready to be checked
// against a Kever's LastEst the same way processChit checks an inline vrc.
func OpenChitCOSE(pub ed25519.PublicKey, raw []byte) (sealedDigest []byte, index int, err error) {
	msg, err := cose.NewCoseSign1MessageFromCBOR(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("kevery: %w", err)
	}
	if err := msg.VerifyWithPublicKey(pub, nil); err != nil {
		return nil, 0, fmt.Errorf("kevery: %w", err)
	}
	idx, _, _, err := msg.KeyIndex()
	if err != nil {
		return nil, 0, fmt.Errorf("kevery: %w", err)
	}
	return msg.Payload, idx, nil
}
