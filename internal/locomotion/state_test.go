package locomotion

import "testing"

func TestMovementState_Grounded(t *testing.T) {
	grounded := map[MovementState]bool{
		Idle:      true,
		Walking:   true,
		Running:   true,
		Sprinting: true,
		Crouching: true,
		Jumping:   false,
		Falling:   false,
		Swimming:  false,
	}
	for s, want := range grounded {
		if got := s.Grounded(); got != want {
			t.Errorf("%v.Grounded() = %v, want %v", s, got, want)
		}
	}
}

func TestMovementState_StringRoundTrip(t *testing.T) {
	for s := Idle; s < numStates; s++ {
		got, ok := ParseMovementState(s.String())
		if !ok || got != s {
			t.Errorf("ParseMovementState(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseMovementState("flying"); ok {
		t.Error("unknown name should not parse")
	}
	if MovementState(42).Valid() {
		t.Error("out of range state should be invalid")
	}
}

func TestStateHolder_Set(t *testing.T) {
	h := NewStateHolder(Idle)
	if h.Current() != Idle || h.Last() != Idle {
		t.Fatalf("new holder = %v/%v, want idle/idle", h.Current(), h.Last())
	}

	h.Set(Running)
	h.Set(Jumping)
	if h.Current() != Jumping {
		t.Errorf("Current = %v, want jumping", h.Current())
	}
	if h.Last() != Running {
		t.Errorf("Last = %v, want running", h.Last())
	}
	if h.InGroundedState() {
		t.Error("jumping is not a grounded state")
	}
}
