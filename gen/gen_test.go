package gen

import (
	"bytes"
	"strings"
	"testing"

	"cheapest/agg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Rows: 1000, Cities: 30, Products: 5, MaxPrice: 500, Seed: 7}
	require.NoError(t, Write(&buf, cfg))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1001)
	assert.Equal(t, strings.TrimSuffix(Header, "\n"), lines[0])

	p := agg.NewPartial()
	data := buf.Bytes()
	require.NoError(t, agg.ProcessChunk(p, data, agg.Chunk{End: len(data)}))
	assert.Equal(t, int64(1000), p.Records())
	assert.LessOrEqual(t, p.Cities.Len(), 30)
	assert.LessOrEqual(t, p.Products.Len(), 5)

	p.Cities.Each(func(_ string, city int32) {
		p.EachProduct(city, func(_ int32, cost int64) {
			assert.LessOrEqual(t, cost, int64(500))
		})
	})
}

func TestWriteDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	cfg := Config{Rows: 200, Cities: 4, Products: 9, MaxPrice: 10_00, Seed: 3, CRLF: true}
	require.NoError(t, Write(&a, cfg))
	require.NoError(t, Write(&b, cfg))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "\r\n")
}

func TestWriteInvalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Config{Rows: 1, Cities: 0, Products: 1}))
	assert.Error(t, Write(&buf, Config{Rows: 1, Cities: 1, Products: 1, MaxPrice: -1}))
}

func TestAppendName(t *testing.T) {
	names := []string{"a", "b"}
	assert.Equal(t, "a", string(appendName(nil, names, 0)))
	assert.Equal(t, "b", string(appendName(nil, names, 1)))
	assert.Equal(t, "a_1", string(appendName(nil, names, 2)))
	assert.Equal(t, "b_2", string(appendName(nil, names, 5)))
}
