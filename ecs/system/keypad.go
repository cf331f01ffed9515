package system

import (
	"log"
	"strings"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
)

// keypadClearDelay is how long a submitted entry stays on the display.
const keypadClearDelay = 0.75

// KeypadSystem feeds the player's typed digits to the keypad in reach and
// opens the keypad's door on the right code. Typed input is consumed whether
// or not a keypad is in reach.
type KeypadSystem struct {
	opener Opener
}

func NewKeypadSystem(opener Opener) *KeypadSystem {
	return &KeypadSystem{opener: opener}
}

func (s *KeypadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.KeypadComponent.Kind(), func(e ecs.Entity, kp *component.Keypad) {
		if kp.Feedback == component.KeypadIdle {
			return
		}
		kp.ClearTimer -= dt
		if common.Expired(kp.ClearTimer) {
			kp.Entry = ""
			kp.Feedback = component.KeypadIdle
		}
	})

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Player, in *component.Input, t *component.Transform) {
		keys, submit, clear := in.Keys, in.Submit, in.ClearCode
		in.Keys, in.Submit, in.ClearCode = "", false, false
		if keys == "" && !submit && !clear {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}
		kp, ok := keypadInReach(w, e, t.Position)
		if !ok {
			return
		}

		if clear {
			kp.Entry = ""
			kp.Feedback = component.KeypadIdle
		}
		for _, r := range keys {
			if r < '0' || r > '9' || len(kp.Entry) >= kp.Limit {
				continue
			}
			kp.Entry += string(r)
		}
		if submit {
			s.submit(w, kp)
		}
	})
}

func (s *KeypadSystem) submit(w *ecs.World, kp *component.Keypad) {
	kp.ClearTimer = keypadClearDelay
	if kp.Entry != kp.Code {
		kp.Feedback = component.KeypadRejected
		return
	}
	kp.Feedback = component.KeypadAccepted

	door := ecs.Entity(kp.Door)
	d, ok := ecs.Get(w, door, component.DoorComponent.Kind())
	if !ok || d.Open {
		return
	}
	d.Locked = false
	d.Open = true
	if rect, ok := entity.DoorRect(w, door); ok && s.opener != nil {
		s.opener.Unblock(rect)
	}
	log.Printf("keypad: door entity=%s opened", door)
}

func keypadInReach(w *ecs.World, player ecs.Entity, pos common.Vec3) (*component.Keypad, bool) {
	reach := interactReach(w, player)
	var best *component.Keypad
	ecs.ForEach2(w, component.KeypadComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, kp *component.Keypad, t *component.Transform) {
		if d := common.Distance(pos.Flat(), t.Position.Flat()); d <= reach {
			best, reach = kp, d
		}
	})
	return best, best != nil
}

// keypadDisplay renders the entry padded with underscores to the code length.
func keypadDisplay(kp *component.Keypad) string {
	entry := kp.Entry
	if n := kp.Limit - len(entry); n > 0 {
		entry += strings.Repeat("_", n)
	}
	switch kp.Feedback {
	case component.KeypadAccepted:
		return entry + " OK"
	case component.KeypadRejected:
		return entry + " DENIED"
	}
	return entry
}
