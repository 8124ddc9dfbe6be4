package agg

import (
	"bytes"

	"cheapest/decode"
)

const DefaultChunkSize = 100 * 1024 * 1024 // 100MB

// Chunk is a nominal byte range of the input. Its records are the ones
// whose first byte lies in [Begin, End).
type Chunk struct {
	Index int
	Begin int
	End   int
}

// Partition splits length bytes into ceil(length/chunkSize) chunks at raw
// offsets, independent of where records fall. Inputs smaller than
// chunkSize, including empty ones, produce a single chunk.
func Partition(length, chunkSize int) []Chunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	n := max((length+chunkSize-1)/chunkSize, 1)

	chunks := make([]Chunk, n)
	for i := range chunks {
		chunks[i] = Chunk{
			Index: i,
			Begin: i * chunkSize,
			End:   min((i+1)*chunkSize, length),
		}
	}
	return chunks
}

// Start returns the offset of the first record owned by the chunk. The
// first chunk skips the header line; every other chunk skips to just past
// the separator at or after Begin-1, so a record starting exactly on Begin
// stays with this chunk and not the previous one.
func (c Chunk) Start(data []byte) int {
	from := max(c.Begin-1, 0)
	if from >= len(data) {
		return len(data)
	}
	i := bytes.IndexByte(data[from:], decode.RecordSep)
	if i < 0 {
		return len(data)
	}
	return from + i + 1
}
