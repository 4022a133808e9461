package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// entitySet is a set of entity ids used for the registry's pending lists.
type entitySet struct {
	ids     []EntityID
	members *intmap.Map[EntityID, struct{}]
}

func newEntitySet() *entitySet {
	return &entitySet{
		members: intmap.New[EntityID, struct{}](64),
	}
}

func (s *entitySet) add(id EntityID) {
	if _, ok := s.members.Get(id); ok {
		return
	}
	s.members.Put(id, struct{}{})
	s.ids = append(s.ids, id)
}

func (s *entitySet) has(id EntityID) bool {
	_, ok := s.members.Get(id)
	return ok
}

func (s *entitySet) remove(id EntityID) {
	if !s.has(id) {
		return
	}
	s.members.Del(id)
	s.ids = slices.DeleteFunc(s.ids, func(other EntityID) bool {
		return other == id
	})
}

func (s *entitySet) len() int {
	return len(s.ids)
}

// drain empties the set and returns its ids in ascending order.
func (s *entitySet) drain() []EntityID {
	if len(s.ids) == 0 {
		return nil
	}
	out := slices.Clone(s.ids)
	slices.Sort(out)
	s.ids = s.ids[:0]
	s.members.Clear()
	return out
}
