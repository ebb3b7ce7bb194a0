package felog

import (
	"github.com/datatrails/go-datatrails-keri/store"
)

// nodeStore adapts one identifier's slice of store.FELOG to mmr.Log: Get
// alone is enough for the read-only proof functions, Append is only used
// when growing the log.
type nodeStore struct {
	sub    store.OnSub
	prefix []byte
}

func (n nodeStore) Get(i uint64) ([]byte, error) {
	return n.sub.GetOn(n.prefix, i)
}

func (n nodeStore) Append(value []byte) (uint64, error) {
	return n.sub.AppendOn(n.prefix, value)
}
