package gameplay

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// TakeKey picks up a key lying exactly where the player stands
func TakeKey(g *state.Game) {
	key := g.Items.At(g.Position, world.KindKey)
	if key == nil {
		logWarning(g, "There is no key here.")
		return
	}

	g.Inventory.HasKey = true
	g.Items.Remove(key.ID)
	logSuccess(g, "You picked up the key!")
}

// UseFlashlight picks up and switches on a flashlight lying where the player
// stands. Each one raises the light level by one.
func UseFlashlight(g *state.Game) {
	light := g.Items.At(g.Position, world.KindFlashlight)
	if light == nil {
		logWarning(g, "There is no flashlight here.")
		return
	}

	g.Inventory.FlashlightLevel++
	g.Items.Remove(light.ID)
	logSuccess(g, "The flashlight is on! Light level %d.", g.Inventory.FlashlightLevel)
}

// OpenDoor unlocks a door on one of the four tiles next to the player.
// Without the key the door stays where it is.
func OpenDoor(g *state.Game) {
	door := findAdjacentDoor(g)
	if door == nil {
		logWarning(g, "There is no door nearby.")
		return
	}

	if !g.Inventory.HasKey {
		logWarning(g, "The door is locked, you need a key.")
		return
	}

	g.Items.Remove(door.ID)
	logSuccess(g, "You unlocked the door!")
}

// findAdjacentDoor checks the neighbours in up, down, left, right order
func findAdjacentDoor(g *state.Game) *world.Item {
	for _, p := range g.Position.Neighbors() {
		if door := g.Items.At(p, world.KindDoor); door != nil {
			return door
		}
	}
	return nil
}
