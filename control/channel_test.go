package control

import (
	"sync"
	"testing"
	"time"
)

func TestChannelOrder(t *testing.T) {
	ch := NewChannel()
	want := []Intent{SetVolume(0.10), SetVolume(1.00), Toggle()}
	for _, in := range want {
		ch.Send(in)
	}
	for i, w := range want {
		got, ok := ch.TryReceive()
		if !ok {
			t.Fatalf("intent %d missing", i)
		}
		if got != w {
			t.Errorf("intent %d = %v, want %v", i, got, w)
		}
	}
	if _, ok := ch.TryReceive(); ok {
		t.Error("expected empty channel")
	}
}

func TestChannelReceiveTimeout(t *testing.T) {
	ch := NewChannel()
	start := time.Now()
	if _, ok := ch.Receive(20 * time.Millisecond); ok {
		t.Fatal("expected timeout on empty channel")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("Receive returned before the timeout")
	}

	// A timeout does not close the channel.
	ch.Send(Toggle())
	got, ok := ch.Receive(time.Second)
	if !ok || got.Kind != KindToggle {
		t.Errorf("Receive after timeout = (%v, %v)", got, ok)
	}
}

func TestChannelReceiveWakesOnSend(t *testing.T) {
	ch := NewChannel()
	go func() {
		time.Sleep(10 * time.Millisecond)
		ch.Send(SetVolume(0.25))
	}()
	got, ok := ch.Receive(time.Second)
	if !ok || got != SetVolume(0.25) {
		t.Errorf("Receive = (%v, %v)", got, ok)
	}
}

func TestChannelManyProducers(t *testing.T) {
	ch := NewChannel()
	const producers, each = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				// Level carries (producer, sequence) so per-producer order can be checked.
				ch.Send(SetVolume(float32(p*1000 + i)))
			}
		}(p)
	}

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	received := 0
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	for received < producers*each {
		in, ok := ch.Receive(time.Second)
		if !ok {
			t.Fatalf("timed out after %d intents", received)
		}
		v := int(in.Level)
		p, seq := v/1000, v%1000
		if seq <= last[p] {
			t.Fatalf("producer %d: seq %d after %d", p, seq, last[p])
		}
		last[p] = seq
		received++
	}
	<-done
	if ch.Len() != 0 {
		t.Errorf("Len = %d after draining", ch.Len())
	}
}

func TestIntentString(t *testing.T) {
	if got := SetVolume(0.25).String(); got != "set_volume(0.25)" {
		t.Errorf("got %q", got)
	}
	if got := Toggle().String(); got != "toggle" {
		t.Errorf("got %q", got)
	}
	if got := (Intent{Kind: 7}).String(); got != "unknown(7)" {
		t.Errorf("got %q", got)
	}
}
