package gen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"cheapest/decode"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

const Header = "city,product,price\n"

var (
	cityNames = []string{
		"Casablanca", "Rabat", "Marrakech", "Fes", "Tangier", "Agadir", "Meknes",
		"Oujda", "Kenitra", "Tetouan", "Safi", "Essaouira", "Nador", "Laayoune",
	}
	productNames = []string{
		"Tomato", "Potato", "Onion", "Carrot", "Apple", "Banana", "Orange", "Mint",
		"Olive_Oil", "Flour", "Sugar", "Milk", "Eggs", "Lentils", "Chickpeas",
		"Dates", "Saffron", "Cumin", "Lemon", "Bell_Pepper",
	}
)

type Config struct {
	Rows     int
	Cities   int
	Products int
	// MaxPrice is in hundredths.
	MaxPrice int64
	Seed     int64
	// CRLF terminates records with \r\n instead of \n.
	CRLF bool
}

func DefaultConfig() Config {
	return Config{
		Rows:     1_000_000,
		Cities:   len(cityNames),
		Products: len(productNames),
		MaxPrice: 100_00,
		Seed:     42,
	}
}

// Write emits a header and cfg.Rows records. Cities and products follow
// scrambled zipfian distributions so some names dominate, like real
// observations do.
func Write(w io.Writer, cfg Config) error {
	if cfg.Cities <= 0 || cfg.Products <= 0 {
		return fmt.Errorf("unable to generate input: need at least one city and product (cities=%d, products=%d)", cfg.Cities, cfg.Products)
	}
	if cfg.MaxPrice < 0 {
		return fmt.Errorf("unable to generate input: negative max price %d", cfg.MaxPrice)
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	cities := generator.NewScrambledZipfian(0, int64(cfg.Cities-1), generator.ZipfianConstant)
	products := generator.NewScrambledZipfian(0, int64(cfg.Products-1), generator.ZipfianConstant)

	terminator := "\n"
	if cfg.CRLF {
		terminator = "\r\n"
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	buf := make([]byte, 0, 64)
	for range cfg.Rows {
		buf = appendName(buf[:0], cityNames, pick(cities, r, cfg.Cities))
		buf = append(buf, decode.FieldSep)
		buf = appendName(buf, productNames, pick(products, r, cfg.Products))
		buf = append(buf, decode.FieldSep)
		buf = decode.AppendPrice(buf, r.Int63n(cfg.MaxPrice+1))
		buf = append(buf, terminator...)

		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("unable to write record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to flush records: %w", err)
	}
	return nil
}

// pick keeps the draw inside [0, n) whatever the sign of the scrambled hash.
func pick(g *generator.ScrambledZipfian, r *rand.Rand, n int) int64 {
	i := g.Next(r) % int64(n)
	if i < 0 {
		i += int64(n)
	}
	return i
}

// appendName uses the fixed names first and numbers the overflow.
func appendName(buf []byte, names []string, i int64) []byte {
	n := int64(len(names))
	buf = append(buf, names[i%n]...)
	if i >= n {
		buf = append(buf, '_')
		buf = strconv.AppendInt(buf, i/n, 10)
	}
	return buf
}
