package crypter

import "github.com/datatrails/go-datatrails-keri/codec"

// DeriveAID computes an identifier prefix for an inception event. A
// non-transferable single-key identifier's prefix is simply its own
// encoded key; any other identifier's prefix is a digest over the
// inception body serialized with "i" held empty and without its "v" and "d"
// fields (both depend on "i"), so the prefix commits to
// everything else the inception event says about the identifier without
// being self-referential.
func DeriveAID(nonTransferable bool, verfer Verfer, code DigestCode, kind codec.Kind, ked map[string]any) (string, error) {
	if nonTransferable {
		return verfer.Qb64(), nil
	}
	clone := make(map[string]any, len(ked))
	for k, v := range ked {
		if k == "v" || k == "d" {
			continue
		}
		clone[k] = v
	}
	clone["i"] = ""
	ser, err := codec.Marshal(kind, clone)
	if err != nil {
		return "", err
	}
	d, err := NewDiger(code, ser)
	if err != nil {
		return "", err
	}
	return d.Qb64(), nil
}
