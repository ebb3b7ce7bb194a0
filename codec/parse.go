package codec

import "fmt"

// Frame is one decoded message lifted off the wire: its raw bytes (exactly
// as signed/digested), its generic field map, and the Kind/Version it
// declared.
type Frame struct {
	Raw     []byte
	Ked     map[string]any
	Kind    Kind
	Version Version
}

// Parse extracts the single leading frame from buf. It returns ErrShortage
// (with a nil Frame) when buf plausibly starts a frame but does not yet
// hold as many bytes as the version string declares; callers read more and
// retry. ErrNoVersionString means buf's leading bytes cannot be a frame start
// at all and the caller should treat it as a stream error, not a shortage.
//
// The returned Frame.Raw aliases buf[:size]; callers that retain it across
// further reads into the same backing array must copy it first.
func Parse(buf []byte) (*Frame, int, error) {
	// The declared size is the total length of the frame starting at buf[0],
	// not at the version string's offset within it: "v" is simply not
	// always the very first byte once the sniff window allows for
	// container-specific length prefixes.
	_, ver, kind, size, err := FindVersionString(buf)
	if err != nil {
		return nil, 0, err
	}
	if ver.Major != Major {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedMajor, ver.Major)
	}
	if size > len(buf) {
		return nil, 0, ErrShortage
	}
	raw := buf[:size]
	var ked map[string]any
	if err := Unmarshal(kind, raw, &ked); err != nil {
		return nil, 0, err
	}
	return &Frame{Raw: raw, Ked: ked, Kind: kind, Version: ver}, size, nil
}
