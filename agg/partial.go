package agg

import (
	"errors"
	"math"

	"cheapest/dict"
)

// NoPrice marks a (city, product) cell with no observation. It is larger
// than any price the decoder can produce.
const NoPrice int64 = math.MaxInt64

const initialEntities = 1 << 7

// ErrCostOverflow is returned when a city total no longer fits in int64.
var ErrCostOverflow = errors.New("city total overflows int64")

// Partial is the accumulation of one worker, or, after Merge, of all of
// them. Cost rows are indexed by product id and grow on demand; cells past
// the end of a row read as NoPrice.
type Partial struct {
	Cities   *dict.Dict
	Products *dict.Dict

	cityCost    []int64
	productCost [][]int64
	records     int64
}

func NewPartial() *Partial {
	return &Partial{
		Cities:   dict.New(initialEntities),
		Products: dict.New(initialEntities),
	}
}

// Add records one observation. Nothing is recorded if the city total
// would overflow.
func (p *Partial) Add(city, product int32, price int64) error {
	p.ensureCity(city)
	sum, ok := addCost(p.cityCost[city], price)
	if !ok {
		return ErrCostOverflow
	}
	p.cityCost[city] = sum
	p.lowerCost(city, product, price)
	p.records++
	return nil
}

func (p *Partial) CityCost(city int32) int64 {
	if int(city) >= len(p.cityCost) {
		return 0
	}
	return p.cityCost[city]
}

func (p *Partial) cost(city, product int32) int64 {
	if int(city) >= len(p.productCost) {
		return NoPrice
	}
	row := p.productCost[city]
	if int(product) >= len(row) {
		return NoPrice
	}
	return row[product]
}

// EachProduct visits the products observed in city, in product id order.
func (p *Partial) EachProduct(city int32, f func(product int32, cost int64)) {
	if int(city) >= len(p.productCost) {
		return
	}
	for product, cost := range p.productCost[city] {
		if cost != NoPrice {
			f(int32(product), cost)
		}
	}
}

func (p *Partial) Records() int64 {
	return p.records
}

func (p *Partial) ensureCity(city int32) {
	for int(city) >= len(p.cityCost) {
		p.cityCost = append(p.cityCost, 0)
		p.productCost = append(p.productCost, nil)
	}
}

// addCost adds two non-negative totals, reporting false on overflow.
func addCost(a, b int64) (int64, bool) {
	if b > math.MaxInt64-a {
		return 0, false
	}
	return a + b, true
}

// lowerCost assumes ensureCity has been called for city.
func (p *Partial) lowerCost(city, product int32, price int64) {
	row := p.productCost[city]
	for int(product) >= len(row) {
		row = append(row, NoPrice)
	}
	row[product] = min(row[product], price)
	p.productCost[city] = row
}
