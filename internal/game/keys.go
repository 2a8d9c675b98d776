package game

import (
	"github.com/zyedidia/generic/mapset"
)

// Key identifies a keyboard key by its DOM-style name.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = " "
	KeyW          Key = "w"
	KeyA          Key = "a"
	KeyS          Key = "s"
	KeyD          Key = "d"
	KeyX          Key = "x"
	KeyEscape     Key = "Escape"
	KeyR          Key = "r"
	KeyShiftR     Key = "R"
)

// Controls maps one human player's actions to keys.
type Controls struct {
	Up, Down, Left, Right, Bomb Key
}

// controlSets is indexed by human seat (player 1, player 2).
var controlSets = [2]Controls{
	{Up: KeyArrowUp, Down: KeyArrowDown, Left: KeyArrowLeft, Right: KeyArrowRight, Bomb: KeySpace},
	{Up: KeyW, Down: KeyS, Left: KeyA, Right: KeyD, Bomb: KeyX},
}

// ControlsFor returns the key bindings for a human player id.
func ControlsFor(playerID int) Controls {
	if playerID == 1 {
		return controlSets[0]
	}
	return controlSets[1]
}

func isControlKey(k Key) bool {
	switch k {
	case KeyEscape, KeyR, KeyShiftR:
		return true
	}
	for _, c := range controlSets {
		if k == c.Up || k == c.Down || k == c.Left || k == c.Right || k == c.Bomb {
			return true
		}
	}
	return false
}

// KeySet is an immutable set of held keys. With and Without return a new
// set and leave the receiver untouched.
type KeySet struct {
	set mapset.Set[Key]
}

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool {
	return s.set.Has(k)
}

// Len returns the number of held keys.
func (s KeySet) Len() int {
	return s.set.Size()
}

// With returns a copy of the set including k.
func (s KeySet) With(k Key) KeySet {
	if s.Has(k) {
		return s
	}
	next := s.copy()
	next.set.Put(k)
	return next
}

// Without returns a copy of the set excluding k.
func (s KeySet) Without(k Key) KeySet {
	if !s.Has(k) {
		return s
	}
	next := s.copy()
	next.set.Remove(k)
	return next
}

func (s KeySet) copy() KeySet {
	next := mapset.New[Key]()
	s.set.Each(func(k Key) {
		next.Put(k)
	})
	return KeySet{set: next}
}
