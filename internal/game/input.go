package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/chopper/internal/events"
)

var keyMap = map[ebiten.Key]events.Key{
	ebiten.KeyArrowUp:    events.KeyUp,
	ebiten.KeyArrowRight: events.KeyRight,
	ebiten.KeyArrowDown:  events.KeyDown,
	ebiten.KeyArrowLeft:  events.KeyLeft,
	ebiten.KeySpace:      events.KeySpace,
	ebiten.KeyC:          events.KeyC,
	ebiten.KeyEscape:     events.KeyEscape,
}

// TranslateKey maps an ebiten key to the game's key set.
func TranslateKey(k ebiten.Key) events.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return events.KeyUnknown
}
