package kevery

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/codec"
	"github.com/datatrails/go-datatrails-keri/crypter"
)

// parseSigers reads the indexed-signature attachments following a key
// event frame and reports how many bytes of buf they occupied. In counted
// mode buf starts with a Counter declaring exactly how many Sigers follow;
// in framed mode (no leading Counter) every remaining byte in buf is
// consumed as one back-to-back run of Sigers, since Ingest is always
// handed exactly one message's worth of bytes.
//
// Both modes lean on every Siger.Qb64() having the same fixed length for a
// given derivation code: that is what lets a run of them be split apart
// with no per-item length prefix.
func parseSigers(buf []byte) ([]crypter.Siger, int, error) {
	rest := buf
	consumed := 0
	count := -1
	if c, n, err := codec.ParseCounter(buf); err == nil && c.Code == codec.CodeControllerSigs {
		rest = buf[n:]
		consumed += n
		count = c.Count
	}

	var out []crypter.Siger
	for len(rest) > 0 {
		if count >= 0 && len(out) == count {
			break
		}
		s, n, err := crypter.ParseSigerPrefix(rest)
		if err != nil {
			if count < 0 {
				// framed mode: a short trailing remainder with nothing
				// left to parse as a Siger means attachments are done.
				break
			}
			return nil, 0, err
		}
		out = append(out, s)
		rest = rest[n:]
		consumed += n
	}
	if count >= 0 && len(out) != count {
		return nil, 0, fmt.Errorf("kevery: counted siger group declared %d, parsed %d", count, len(out))
	}
	if count < 0 {
		consumed = len(buf)
	}
	return out, consumed, nil
}

// parseCigarCouplets reads the non-transferable receipt couplets following
// an rct frame, under the same framed/counted rules as parseSigers.
func parseCigarCouplets(buf []byte) ([]crypter.Cigar, int, error) {
	rest := buf
	consumed := 0
	count := -1
	if c, n, err := codec.ParseCounter(buf); err == nil && c.Code == codec.CodeWitnessCouplets {
		rest = buf[n:]
		consumed += n
		count = c.Count
	}

	var out []crypter.Cigar
	for len(rest) > 0 {
		if count >= 0 && len(out) == count {
			break
		}
		c, n, err := crypter.ParseCigarCouplet(rest)
		if err != nil {
			if count < 0 {
				break
			}
			return nil, 0, err
		}
		out = append(out, c)
		rest = rest[n:]
		consumed += n
	}
	if count >= 0 && len(out) != count {
		return nil, 0, fmt.Errorf("kevery: counted couplet group declared %d, parsed %d", count, len(out))
	}
	if count < 0 {
		consumed = len(buf)
	}
	return out, consumed, nil
}
