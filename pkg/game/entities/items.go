package entities

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
)

// ItemInfo is how an item kind is named and drawn
type ItemInfo struct {
	Name string // translation msgid
	Icon string // single glyph for the map
}

// ItemTypes maps item kinds to their display information
var ItemTypes = map[world.ItemKind]ItemInfo{
	world.KindKey:        {Name: "key", Icon: "k"},
	world.KindDoor:       {Name: "door", Icon: "D"},
	world.KindFlashlight: {Name: "flashlight", Icon: "f"},
	world.KindTrapGhost:  {Name: "ghost trap", Icon: "^"},
	world.KindTrapHole:   {Name: "hole", Icon: "^"},
}

// Icon returns the map glyph for kind, or "?" for anything unknown
func Icon(kind world.ItemKind) string {
	if info, ok := ItemTypes[kind]; ok {
		return info.Icon
	}
	return "?"
}
