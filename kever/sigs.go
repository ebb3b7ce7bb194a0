package kever

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/datatrails/go-datatrails-keri/crypter"
)

// ParseTholder decodes a "kt" field's dynamic shape (a bare integer, a hex
// string, a list of weight strings, or a list of lists of weight strings)
// into the corresponding crypter.Tholder.
func ParseTholder(raw json.RawMessage) (crypter.Tholder, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return crypter.Tholder{}, fmt.Errorf("%w: kt", ErrMissingField)
	}

	if trimmed[0] == '[' {
		var weights []string
		if err := json.Unmarshal(trimmed, &weights); err == nil {
			return crypter.NewWeightedTholder(weights)
		}
		var clauses [][]string
		if err := json.Unmarshal(trimmed, &clauses); err != nil {
			return crypter.Tholder{}, fmt.Errorf("kever: malformed kt array: %w", err)
		}
		return crypter.NewClausalTholder(clauses)
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil {
		n, err := strconv.ParseInt(asString, 16, 64)
		if err != nil {
			return crypter.Tholder{}, fmt.Errorf("kever: malformed kt %q: %w", asString, err)
		}
		return crypter.NewSimpleTholder(int(n))
	}

	var asNumber int
	if err := json.Unmarshal(trimmed, &asNumber); err != nil {
		return crypter.Tholder{}, fmt.Errorf("kever: malformed kt %s: %w", trimmed, err)
	}
	return crypter.NewSimpleTholder(asNumber)
}

// ParseVerfers decodes a "k" key list into Verfers, in order.
func ParseVerfers(k []string) ([]crypter.Verfer, error) {
	out := make([]crypter.Verfer, len(k))
	for i, qb64 := range k {
		v, err := crypter.ParseVerfer(qb64)
		if err != nil {
			return nil, fmt.Errorf("kever: key %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// verifySignatures resolves each siger's Index against verfers and checks
// it against ser. A signature whose index is out of range, or that fails
// to verify, is a hard failure regardless of how many other signatures are
// present: only a verified set that falls short of the threshold is
// recoverable (ErrMissingSignature), and that decision belongs to the
// caller, which knows the governing Tholder.
func verifySignatures(verfers []crypter.Verfer, sigers []crypter.Siger, ser []byte) ([]int, error) {
	if len(sigers) == 0 {
		return nil, fmt.Errorf("%w: no signatures attached", ErrMissingField)
	}
	verified := make([]int, 0, len(sigers))
	for _, s := range sigers {
		if s.Index < 0 || s.Index >= len(verfers) {
			return nil, fmt.Errorf("%w: index %d, have %d keys", ErrBadSignature, s.Index, len(verfers))
		}
		if !s.Verify(verfers[s.Index], ser) {
			return nil, fmt.Errorf("%w: index %d", ErrBadSignature, s.Index)
		}
		verified = append(verified, s.Index)
	}
	return verified, nil
}
