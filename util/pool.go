package util

import "sync"

// MessageBufSize is the buffer size for protocol messages.  The
// longest message the game ever exchanges is eight words plus
// separators, so 4 KiB leaves generous headroom for sloppy clients.
const MessageBufSize = 4 * 1024

// BufPool provides reusable byte buffers for per-session receive
// buffers, so a busy event doesn't churn allocations on every
// connection.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, MessageBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
