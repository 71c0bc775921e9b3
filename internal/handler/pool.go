package handler

import (
	"bytes"
	"sync"
)

// Response bodies are small JSON documents, so pooled buffers start at 512
// bytes. Buffers that grew past maxPooledBufferSize are dropped instead of
// being returned, keeping the pool from pinning large allocations after a
// one-off big response (game lists with full rosters, event journal pages).
const maxPooledBufferSize = 64 << 10

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
