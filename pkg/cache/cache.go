package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrKeyExists = errors.New("key already exists in cache")

// Cache is a weighted LRU cache. Once the total weight of the entries exceeds
// the budget, least recently used entries are evicted until it fits again.
type Cache[V any] interface {
	GetWeight() int
	GetBudget() int

	// Insert adds an entry. Existing keys are not replaced.
	Insert(key string, value V, weight int) error

	// Retrieve returns an entry and marks it as most recently used
	Retrieve(key string) (V, bool)

	Clear()
}

type node[V any] struct {
	prev, next *node[V]

	key    string
	value  V
	weight int
}

type cache[V any] struct {
	log *logrus.Entry

	mu     sync.Mutex
	head   *node[V] // most recently used
	tail   *node[V] // least recently used
	lookup map[string]*node[V]
	weight int
	budget int
}

// NewCache returns an empty cache with a total weight budget
func NewCache[V any](budget int) Cache[V] {
	return &cache[V]{
		log:    logrus.StandardLogger().WithField("type", "cache"),
		lookup: make(map[string]*node[V]),
		budget: budget,
	}
}

func (c *cache[V]) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *cache[V]) GetBudget() int {
	return c.budget
}

func (c *cache[V]) Insert(key string, value V, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.lookup[key]; found {
		return ErrKeyExists
	}

	n := &node[V]{
		key:    key,
		value:  value,
		weight: weight,
	}
	c.pushFront(n)
	c.lookup[key] = n
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		delete(c.lookup, evicted.key)
		c.weight -= evicted.weight

		c.log.WithFields(logrus.Fields{
			"key":          evicted.key,
			"weight":       evicted.weight,
			"spare_weight": c.budget - c.weight,
		}).Debug("evicted cache entry")
	}

	return nil
}

func (c *cache[V]) Retrieve(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, found := c.lookup[key]
	if !found {
		var zero V
		return zero, false
	}

	if n != c.head {
		c.unlink(n)
		c.pushFront(n)
	}
	return n.value, true
}

func (c *cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*node[V])
	c.weight = 0
}

func (c *cache[V]) pushFront(n *node[V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *cache[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
