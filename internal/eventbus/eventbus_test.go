package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string](0)
	ch := bus.Subscribe()
	bus.Publish("hello")
	v := <-ch
	if v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after unsubscribe")
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := New[int](1)
	ch := bus.Subscribe()
	bus.Publish(1)
	bus.Publish(2)
	if got := <-ch; got != 1 {
		t.Fatalf("expected 1 got %d", got)
	}
	if bus.Dropped() != 1 {
		t.Fatalf("expected 1 drop got %d", bus.Dropped())
	}
}

func TestBusClose(t *testing.T) {
	bus := New[int](0)
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	bus.Publish(3)
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("expected closed channel from closed bus")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New[float64](0)
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
