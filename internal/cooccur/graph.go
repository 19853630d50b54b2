// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cooccur builds the co-purchase recommendation model: a
// symmetric weighted graph of products counted per customer, ranked
// and truncated into per-product neighbor lists.
package cooccur

import "sort"

// Graph is a sparse symmetric co-occurrence graph. Edge weights count
// the number of distinct customers who purchased both endpoint
// products, never the number of joint order events.
type Graph struct {
	adj map[uint]map[uint]int
}

// NewGraph creates an empty co-occurrence graph
func NewGraph() *Graph {
	return &Graph{adj: make(map[uint]map[uint]int)}
}

// AddBasket registers one customer's purchase history. Duplicate
// products collapse to a single occurrence, so a customer buying the
// same pair twice still contributes weight 1 per edge. Baskets with
// fewer than two distinct products contribute nothing.
func (g *Graph) AddBasket(productIDs []uint) {
	seen := make(map[uint]struct{}, len(productIDs))
	distinct := make([]uint, 0, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	if len(distinct) < 2 {
		return
	}

	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			g.increment(distinct[i], distinct[j])
			g.increment(distinct[j], distinct[i])
		}
	}
}

func (g *Graph) increment(from, to uint) {
	neighbors, ok := g.adj[from]
	if !ok {
		neighbors = make(map[uint]int)
		g.adj[from] = neighbors
	}
	neighbors[to]++
}

// Count returns the co-occurrence weight between two products
func (g *Graph) Count(a, b uint) int {
	return g.adj[a][b]
}

// Products returns every product with at least one edge, in ascending
// id order
func (g *Graph) Products() []uint {
	ids := make([]uint, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RankedNeighbors returns the neighbors of a product with weight >=
// minCount, ordered by descending weight and truncated to topK.
// Equal weights are broken by ascending product id, so ranking is
// deterministic regardless of map iteration order.
func (g *Graph) RankedNeighbors(productID uint, minCount, topK int) []uint {
	neighbors := g.adj[productID]
	if len(neighbors) == 0 {
		return nil
	}

	type weighted struct {
		id    uint
		count int
	}

	ranked := make([]weighted, 0, len(neighbors))
	for id, count := range neighbors {
		if count >= minCount {
			ranked = append(ranked, weighted{id: id, count: count})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].id < ranked[j].id
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}

	ids := make([]uint, len(ranked))
	for i, n := range ranked {
		ids[i] = n.id
	}
	return ids
}
