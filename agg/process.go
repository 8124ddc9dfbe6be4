package agg

import (
	"fmt"

	"cheapest/decode"
)

const tokenCapacity = 40

// ProcessChunk parses every record owned by c into p. Records that cross
// c.End are read to completion; the next chunk skips them.
func ProcessChunk(p *Partial, data []byte, c Chunk) error {
	cur := decode.NewCursor(data, c.Start(data))
	city := make([]byte, 0, tokenCapacity)
	product := make([]byte, 0, tokenCapacity)

	var err error
	var price int64
	for cur.Pos() < c.End {
		start := cur.Pos()
		if city, err = cur.ReadField(city); err != nil {
			return fmt.Errorf("unable to read city in chunk %d: %w", c.Index, err)
		}
		if product, err = cur.ReadField(product); err != nil {
			return fmt.Errorf("unable to read product in chunk %d: %w", c.Index, err)
		}
		if price, err = cur.ReadPrice(); err != nil {
			return fmt.Errorf("unable to read price in chunk %d: %w", c.Index, err)
		}

		if err = p.Add(p.Cities.InternBytes(city), p.Products.InternBytes(product), price); err != nil {
			return fmt.Errorf("unable to add record at byte %d in chunk %d: %w", start, c.Index, err)
		}
	}
	return nil
}
