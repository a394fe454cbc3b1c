package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type OrderedKV[T any] struct {
	Value T
	Order int64
}

// OrderedKVMap is a JSON object that remembers the position of its keys.
type OrderedKVMap[T any] map[string]OrderedKV[T]

type orderedPair[T any] struct {
	key   string
	value T
	order int64
}

func (om OrderedKVMap[T]) pairs() []orderedPair[T] {
	pairs := make([]orderedPair[T], 0, len(om))
	for k, v := range om {
		pairs = append(pairs, orderedPair[T]{
			key:   k,
			value: v.Value,
			order: v.Order,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].order == pairs[j].order {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].order < pairs[j].order
	})
	return pairs
}

func (om OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range om.pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (om *OrderedKVMap[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*om = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	result := make(OrderedKVMap[T])
	var order int64
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var value T
		if err := dec.Decode(&value); err != nil {
			return err
		}
		result[key] = OrderedKV[T]{Value: value, Order: order}
		order++
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*om = result
	return nil
}

// Keys returns the keys in their stored order.
func (om OrderedKVMap[T]) Keys() []string {
	pairs := om.pairs()
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.key
	}
	return keys
}

func (om OrderedKVMap[T]) Get(key string) (T, bool) {
	v, ok := om[key]
	return v.Value, ok
}

// Prepend returns a copy of om where key holds value and sorts before every
// other key. The receiver is left untouched.
func (om OrderedKVMap[T]) Prepend(key string, value T) OrderedKVMap[T] {
	result := make(OrderedKVMap[T], len(om)+1)
	pairs := om.pairs()
	var first int64
	if len(pairs) > 0 {
		first = pairs[0].order
	}
	for _, p := range pairs {
		if p.key == key {
			continue
		}
		result[p.key] = OrderedKV[T]{Value: p.value, Order: p.order}
	}
	result[key] = OrderedKV[T]{Value: value, Order: first - 1}
	return result
}

// Omit returns a copy of om without key.
func (om OrderedKVMap[T]) Omit(key string) OrderedKVMap[T] {
	result := make(OrderedKVMap[T], len(om))
	for k, v := range om {
		if k == key {
			continue
		}
		result[k] = v
	}
	return result
}
