package ecs

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/backdrop"
	"github.com/phanxgames/backdrop/raster"
)

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []backdrop.LoopEvent
	LoopEventType.Subscribe(world, func(w donburi.World, e backdrop.LoopEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(backdrop.LoopEvent{Type: backdrop.LoopStarted})
	sink.EmitEvent(backdrop.LoopEvent{Type: backdrop.LoopThemeChanged, Tick: 7, Dark: true})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	LoopEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != backdrop.LoopStarted {
		t.Errorf("event 0: %+v", received[0])
	}
	if e := received[1]; e.Type != backdrop.LoopThemeChanged || e.Tick != 7 || !e.Dark {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_Latest(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if !world.Valid(sink.Entity()) {
		t.Fatal("state entity not created")
	}

	sink.EmitEvent(backdrop.LoopEvent{Type: backdrop.LoopPointerEntered, Tick: 3})
	got, ok := sink.Latest()
	if !ok || got.Type != backdrop.LoopPointerEntered || got.Tick != 3 {
		t.Errorf("Latest = %+v, %v", got, ok)
	}

	world.Remove(sink.Entity())
	sink.EmitEvent(backdrop.LoopEvent{Type: backdrop.LoopStopped})
	if _, ok := sink.Latest(); ok {
		t.Error("Latest after entity removal reported a value")
	}
}

func TestDonburiSink_Engine(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var types []backdrop.LoopEventType
	LoopEventType.Subscribe(world, func(w donburi.World, e backdrop.LoopEvent) {
		types = append(types, e.Type)
	})

	h, err := raster.NewHeadless(backdrop.DefaultConfig(), backdrop.Viewport{Width: 32, Height: 16, PixelRatio: 1}, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	h.Engine.SetEventSink(sink)
	h.Step(0.1)
	h.Theme.SetDark(true)
	h.Close()
	LoopEventType.ProcessEvents(world)

	want := []backdrop.LoopEventType{backdrop.LoopThemeChanged, backdrop.LoopStopped}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
	if latest, _ := sink.Latest(); latest.Type != backdrop.LoopStopped || !latest.Dark {
		t.Errorf("Latest = %+v", latest)
	}
}
