package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cheapest/agg"
	"cheapest/decode"

	"golang.org/x/exp/slices"
)

// Top is the number of products reported for the winning city.
const Top = 5

var ErrNoData = errors.New("no records to report")

type Line struct {
	Name  string
	Price int64
}

// Report is the cheapest city with its total, followed by at most Top of
// its cheapest products in ascending (price, name) order.
type Report struct {
	City     Line
	Products []Line
}

// Build selects the city with the lowest total, breaking ties by name, and
// its cheapest observed products.
func Build(g *agg.Partial) (Report, error) {
	if g.Cities.Len() == 0 {
		return Report{}, ErrNoData
	}

	winner := int32(-1)
	var best Line
	g.Cities.Each(func(name string, id int32) {
		total := g.CityCost(id)
		if winner < 0 || total < best.Price || (total == best.Price && name < best.Name) {
			winner = id
			best = Line{Name: name, Price: total}
		}
	})

	products := make([]Line, 0, g.Products.Len())
	g.EachProduct(winner, func(product int32, cost int64) {
		products = append(products, Line{Name: g.Products.Key(product), Price: cost})
	})
	slices.SortFunc(products, compareLines)

	return Report{
		City:     best,
		Products: products[:min(Top, len(products))],
	}, nil
}

func compareLines(a, b Line) int {
	switch {
	case a.Price < b.Price:
		return -1
	case a.Price > b.Price:
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}

func (r Report) String() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the fixed "<name> <price>" line format.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, 64*(len(r.Products)+1))
	buf = r.City.append(buf)
	for _, p := range r.Products {
		buf = p.append(buf)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("unable to write report: %w", err)
	}
	return int64(n), nil
}

func (l Line) append(buf []byte) []byte {
	buf = append(buf, l.Name...)
	buf = append(buf, ' ')
	buf = decode.AppendPrice(buf, l.Price)
	return append(buf, '\n')
}
