package generator

import (
	"bytes"
	"sync"
)

// Tiered buffer sizes by field count
const (
	smallBufferSize = 4 * 1024  // 4KB for <20 fields
	largeBufferSize = 32 * 1024 // 32KB for 20+ fields
	largeModel      = 20
	maxPooledBuffer = 1 << 20
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

// getTemplateBuffer returns a buffer sized for the field count.
func getTemplateBuffer(fieldCount int) *bytes.Buffer {
	var buf *bytes.Buffer
	if fieldCount < largeModel {
		buf = smallBufferPool.Get().(*bytes.Buffer)
	} else {
		buf = largeBufferPool.Get().(*bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putTemplateBuffer returns a buffer to the appropriate pool.
func putTemplateBuffer(buf *bytes.Buffer, fieldCount int) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	if fieldCount < largeModel {
		smallBufferPool.Put(buf)
	} else {
		largeBufferPool.Put(buf)
	}
}
