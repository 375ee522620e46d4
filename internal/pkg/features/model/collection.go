package model

// Collection of configuration items, iteration follows the insertion order.
type Collection struct {
	names []string
	items map[string]*Item
}

func NewCollection(items ...*Item) *Collection {
	c := &Collection{items: make(map[string]*Item)}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add item or replace an existing item with the same name, the original position is kept.
func (c *Collection) Add(item *Item) {
	if _, found := c.items[item.Name]; !found {
		c.names = append(c.names, item.Name)
	}
	c.items[item.Name] = item
}

func (c *Collection) Get(name string) (*Item, bool) {
	item, found := c.items[name]
	return item, found
}

func (c *Collection) Has(name string) bool {
	_, found := c.items[name]
	return found
}

func (c *Collection) Remove(name string) {
	if _, found := c.items[name]; !found {
		return
	}
	delete(c.items, name)
	for i, v := range c.names {
		if v == name {
			c.names = append(c.names[:i:i], c.names[i+1:]...)
			break
		}
	}
}

func (c *Collection) Len() int {
	return len(c.names)
}

func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All returns items in the insertion order.
func (c *Collection) All() []*Item {
	out := make([]*Item, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.items[name])
	}
	return out
}
