package core

import (
	"sync"
	"testing"
)

func TestInputLatchLastKeyWins(t *testing.T) {
	l := NewInputLatch()

	if got := l.Input().Direction; got != DirNone {
		t.Fatalf("new latch direction = %v, expected none", got)
	}

	l.Press(DirRight)
	if got := l.Input().Direction; got != DirRight {
		t.Errorf("after right press direction = %v, expected right", got)
	}

	// Opposite key pressed while right is still held
	l.Press(DirLeft)
	if got := l.Input().Direction; got != DirLeft {
		t.Errorf("after left press direction = %v, expected left", got)
	}

	// Releasing any movement key stops the paddle
	l.Release(DirRight)
	if got := l.Input().Direction; got != DirNone {
		t.Errorf("after right release direction = %v, expected none", got)
	}
}

func TestInputLatchIgnoresNone(t *testing.T) {
	l := NewInputLatch()
	l.Press(DirLeft)
	l.Press(DirNone)
	l.Release(DirNone)

	if got := l.Input().Direction; got != DirLeft {
		t.Errorf("direction = %v, expected left", got)
	}

	l.Reset()
	if got := l.Input().Direction; got != DirNone {
		t.Errorf("after Reset direction = %v, expected none", got)
	}
}

func TestInputLatchConcurrentUse(t *testing.T) {
	l := NewInputLatch()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if (i+j)%2 == 0 {
					l.Press(DirLeft)
				} else {
					l.Release(DirLeft)
				}
				_ = l.Input()
			}
		}(i)
	}
	wg.Wait()

	d := l.Input().Direction
	if d != DirNone && d != DirLeft {
		t.Errorf("unexpected direction %v", d)
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || ActionQuit.String() != "Quit" {
		t.Error("unexpected action names")
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
}
