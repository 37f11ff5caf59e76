package locomotion

// DefaultActionDuration is how long ActionTimer lets an action run.
const DefaultActionDuration = 0.6

// ActionTimer ends latched attack and interact actions after a fixed time.
// It stands in for an animation layer that clears them when their clips
// finish.
type ActionTimer struct {
	Duration float32

	attack   float32
	interact float32
}

// Update advances the timers after c has ticked.
func (t *ActionTimer) Update(dt float32, c *Character) {
	d := t.Duration
	if d <= 0 {
		d = DefaultActionDuration
	}
	f := c.Frame()

	t.attack = advance(t.attack, dt, f.Attacking)
	if t.attack >= d {
		c.ClearAttack()
		t.attack = 0
	}
	t.interact = advance(t.interact, dt, f.Interacting)
	if t.interact >= d {
		c.ClearInteract()
		t.interact = 0
	}
}

func advance(elapsed, dt float32, active bool) float32 {
	if !active {
		return 0
	}
	return elapsed + dt
}
