package crypter

import "bytes"

// Nexter is the pre-rotation commitment carried as "n" on an inception or
// rotation event: a digest that binds the threshold and the full set of
// keys a future rotation must reveal and satisfy, without disclosing the
// keys themselves. A rotation is only admissible if the Diger produced by
// NewNextCommitment, computed from the rotation's own tholder and key
// list, matches the Nexter recorded by the event it rotates.
type Nexter struct {
	Diger
}

// NewNextCommitment computes H(sith || keys...) under code: the
// threshold's canonical encoding concatenated with each successor key's
// qb64, in list order, then digested as a single value.
func NewNextCommitment(code DigestCode, tholder Tholder, nextKeys []Verfer) (Nexter, error) {
	ser, err := commitmentSer(tholder, nextKeys)
	if err != nil {
		return Nexter{}, err
	}
	d, err := NewDiger(code, ser)
	if err != nil {
		return Nexter{}, err
	}
	return Nexter{d}, nil
}

// ParseNexter reads a qualified next-key digest from its qb64 form.
func ParseNexter(qb64 string) (Nexter, error) {
	d, err := ParseDiger(qb64)
	if err != nil {
		return Nexter{}, err
	}
	return Nexter{d}, nil
}

// Verify reports whether tholder and nextKeys are the set this commitment
// was made against.
func (n Nexter) Verify(tholder Tholder, nextKeys []Verfer) bool {
	ser, err := commitmentSer(tholder, nextKeys)
	if err != nil {
		return false
	}
	return n.Diger.Verify(ser)
}

func commitmentSer(tholder Tholder, nextKeys []Verfer) ([]byte, error) {
	sith, err := tholder.SithBytes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(sith)
	for _, k := range nextKeys {
		buf.WriteString(k.Qb64())
	}
	return buf.Bytes(), nil
}
