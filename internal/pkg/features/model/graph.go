package model

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// DependentsClosure returns all items transitively depending on the seeds, in the breadth-first order.
// Seeds are not part of the result, unless they depend on each other. Missing items are skipped.
func DependentsClosure(c *Collection, seeds ...string) []string {
	visited := mapset.NewThreadUnsafeSet[string](seeds...)
	var out []string
	queue := append([]string(nil), seeds...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		item, found := c.Get(name)
		if !found {
			continue
		}
		for _, dependent := range item.Dependents {
			if !c.Has(dependent) || !visited.Add(dependent) {
				continue
			}
			out = append(out, dependent)
			queue = append(queue, dependent)
		}
	}
	return out
}

// DependencyOrder returns all item names ordered so that every item follows its dependents.
// Cycles are broken at the first visited item.
func DependencyOrder(c *Collection) []string {
	visited := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, c.Len())
	var visit func(name string)
	visit = func(name string) {
		if !visited.Add(name) {
			return
		}
		if item, found := c.Get(name); found {
			for _, dependent := range item.Dependents {
				if c.Has(dependent) {
					visit(dependent)
				}
			}
		}
		out = append(out, name)
	}
	for _, name := range c.Names() {
		visit(name)
	}
	return out
}

// ComputeDependents sets Item.Dependents from the "dependencies.config" of all items.
// Dependents are transitive: if B depends on A and C on B, then both B and C are dependents of A.
func ComputeDependents(c *Collection) {
	direct := make(map[string][]string)
	for _, item := range c.All() {
		for _, dependency := range item.ConfigDependencies() {
			direct[dependency] = append(direct[dependency], item.Name)
		}
	}

	tmp := NewCollection()
	for _, item := range c.All() {
		tmp.Add(&Item{Name: item.Name, Dependents: direct[item.Name]})
	}
	for _, item := range c.All() {
		item.Dependents = DependentsClosure(tmp, item.Name)
	}
}
