package mmr

import (
	"reflect"
	"testing"
)

func TestPeaks(t *testing.T) {
	cases := []struct {
		size uint64
		want []uint64
	}{
		{0, nil},
		{1, []uint64{1}},
		{3, []uint64{3}},
		{4, []uint64{3, 4}},
		{17, []uint64{15, 18}},
		{2, nil}, // not a complete mmr size (dangling right sibling)
	}
	for _, c := range cases {
		if got := peaks(c.size); !reflect.DeepEqual(got, c.want) {
			t.Errorf("peaks(%d) = %v, want %v", c.size, got, c.want)
		}
	}
}

func TestLeafCount(t *testing.T) {
	cases := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{4, 3},
		{7, 4},
		{39, 21},
	}
	for _, c := range cases {
		if got := LeafCount(c.size); got != c.want {
			t.Errorf("LeafCount(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}
