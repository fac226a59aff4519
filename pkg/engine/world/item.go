package world

import (
	"github.com/zyedidia/generic/mapset"
)

// ItemID is the stable identifier assigned to an item when a maze is loaded
type ItemID int

// ItemSet is a set of item ids
type ItemSet = mapset.Set[ItemID]

// ItemKind names what an item is
type ItemKind string

// Item kinds as they appear in maze content
const (
	KindKey        ItemKind = "KEY"
	KindDoor       ItemKind = "DOOR"
	KindFlashlight ItemKind = "FLASHLIGHT"
	KindTrapGhost  ItemKind = "TRAP_GHOST"
	KindTrapHole   ItemKind = "TRAP_HOLE"
)

// IsValid reports whether k is one of the known kinds
func (k ItemKind) IsValid() bool {
	switch k {
	case KindKey, KindDoor, KindFlashlight, KindTrapGhost, KindTrapHole:
		return true
	}
	return false
}

// IsTrap reports whether k is a trap kind
func (k ItemKind) IsTrap() bool {
	return k == KindTrapGhost || k == KindTrapHole
}

// Item represents something placed on a tile
type Item struct {
	ID   ItemID   `json:"id"`
	Kind ItemKind `json:"type"`
	Pos  Position `json:"position"`
}

// Items is the mutable item collection of one session.
// Items are kept in load order; removal only drops the id from the live set.
type Items struct {
	all  []*Item
	live ItemSet
}

// NewItems creates an empty collection
func NewItems() *Items {
	return &Items{live: mapset.New[ItemID]()}
}

// Add registers a new item and returns it with a fresh id
func (s *Items) Add(kind ItemKind, pos Position) *Item {
	item := &Item{ID: ItemID(len(s.all) + 1), Kind: kind, Pos: pos}
	s.all = append(s.all, item)
	s.live.Put(item.ID)
	return item
}

// Remove drops the item with the given id. Removing twice is a no-op.
func (s *Items) Remove(id ItemID) bool {
	if !s.live.Has(id) {
		return false
	}
	s.live.Remove(id)
	return true
}

// Has reports whether id is still live
func (s *Items) Has(id ItemID) bool {
	return s.live.Has(id)
}

// Len returns the number of live items
func (s *Items) Len() int {
	return s.live.Size()
}

// At returns the first live item of the given kind at pos, or nil
func (s *Items) At(pos Position, kind ItemKind) *Item {
	for _, item := range s.all {
		if item.Pos == pos && item.Kind == kind && s.live.Has(item.ID) {
			return item
		}
	}
	return nil
}

// TrapAt returns the first live trap item at pos, or nil
func (s *Items) TrapAt(pos Position) *Item {
	for _, item := range s.all {
		if item.Pos == pos && item.Kind.IsTrap() && s.live.Has(item.ID) {
			return item
		}
	}
	return nil
}

// Live returns copies of the live items in load order
func (s *Items) Live() []Item {
	out := make([]Item, 0, s.live.Size())
	for _, item := range s.all {
		if s.live.Has(item.ID) {
			out = append(out, *item)
		}
	}
	return out
}
