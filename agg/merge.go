package agg

import "fmt"

// Merge folds the partials, in order, into a new global aggregate. Local
// ids are translated through the global dictionaries; each partial's
// product translation is resolved once per product, on first use.
func Merge(parts []*Partial) (*Partial, error) {
	g := NewPartial()

	var err error
	for _, p := range parts {
		if p == nil {
			continue
		}

		products := make([]int32, p.Products.Len())
		for i := range products {
			products[i] = -1
		}

		p.Cities.Each(func(name string, local int32) {
			if err != nil {
				return
			}
			city := g.Cities.Intern(name)
			g.ensureCity(city)
			sum, ok := addCost(g.cityCost[city], p.CityCost(local))
			if !ok {
				err = fmt.Errorf("unable to merge city %q: %w", name, ErrCostOverflow)
				return
			}
			g.cityCost[city] = sum

			p.EachProduct(local, func(product int32, cost int64) {
				gp := products[product]
				if gp < 0 {
					gp = g.Products.Intern(p.Products.Key(product))
					products[product] = gp
				}
				g.lowerCost(city, gp, cost)
			})
		})
		if err != nil {
			return nil, err
		}

		g.records += p.records
	}

	return g, nil
}
