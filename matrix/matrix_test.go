package matrix

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/BeatGlow/reaction/pixel"
)

type recordingSink struct {
	frames []*pixel.MonoImage
}

func (s *recordingSink) Show(img image.Image) error {
	r := img.Bounds()
	c := pixel.NewMonoImage(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Set(x-r.Min.X, y-r.Min.Y, img.At(x, y))
		}
	}
	s.frames = append(s.frames, c)
	return nil
}

type sleepCounter struct {
	calls int
	total time.Duration
}

func (s *sleepCounter) sleep(ctx context.Context, d time.Duration) error {
	s.calls++
	s.total += d
	return ctx.Err()
}

func newTestMatrix(t *testing.T) (*Matrix, *recordingSink, *sleepCounter) {
	t.Helper()
	var (
		sink  = new(recordingSink)
		sleep = new(sleepCounter)
	)
	m, err := New(sink, &Config{Sleep: sleep.sleep})
	if err != nil {
		t.Fatal(err)
	}
	return m, sink, sleep
}

func TestMatrixDefaults(t *testing.T) {
	m, _, _ := newTestMatrix(t)
	if v := m.Bounds().Size(); v != image.Pt(5, 5) {
		t.Errorf("expected 5x5 matrix, got %s", v)
	}
}

func TestMatrixShow(t *testing.T) {
	m, sink, _ := newTestMatrix(t)
	if err := m.Show(Happy); err != nil {
		t.Fatal(err)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(sink.frames))
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if sink.frames[0].At(x, y) != Happy.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs from icon", x, y)
			}
		}
	}

	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if v := sink.frames[1].Lit(); v != 0 {
		t.Errorf("expected cleared matrix, got %d lit", v)
	}
}

func TestMatrixScroll(t *testing.T) {
	m, sink, sleep := newTestMatrix(t)
	if err := m.Scroll(context.Background(), "3 2 1"); err != nil {
		t.Fatal(err)
	}

	strip := Render(m.face, "3 2 1", 5)
	want := strip.Bounds().Dx() + 5
	if len(sink.frames) != want {
		t.Fatalf("expected %d frames, got %d", want, len(sink.frames))
	}
	if sleep.calls != want {
		t.Errorf("expected %d sleeps, got %d", want, sleep.calls)
	}
	if v := sink.frames[len(sink.frames)-1].Lit(); v != 0 {
		t.Errorf("expected text to have left the matrix, %d LEDs still lit", v)
	}

	var lit bool
	for _, f := range sink.frames {
		if f.Lit() > 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("expected scrolling text to light some LEDs")
	}
}

func TestMatrixScrollCancel(t *testing.T) {
	m, sink, _ := newTestMatrix(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Scroll(ctx, "123"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(sink.frames) != 1 {
		t.Errorf("expected scroll to stop after the first frame, got %d", len(sink.frames))
	}
}

func TestMatrixPrint(t *testing.T) {
	m, sink, sleep := newTestMatrix(t)
	if err := m.Print(context.Background(), "GO!"); err != nil {
		t.Fatal(err)
	}
	if len(sink.frames) != 3 {
		t.Errorf("expected one frame per character, got %d", len(sink.frames))
	}
	if sleep.total != 3*DefaultConfig.PrintDelay {
		t.Errorf("expected %s of delays, got %s", 3*DefaultConfig.PrintDelay, sleep.total)
	}
}

func TestRender(t *testing.T) {
	face, err := NewFace(16)
	if err != nil {
		t.Fatal(err)
	}
	i := Render(face, "88", 16)
	if i.Bounds().Dy() != 16 || i.Bounds().Dx() == 0 {
		t.Fatalf("unexpected render size %s", i.Bounds().Size())
	}
	if i.Lit() == 0 {
		t.Error("expected rendered text to light pixels")
	}
	if v := Render(face, "", 16).Bounds().Dx(); v != 0 {
		t.Errorf("expected empty text to have no width, got %d", v)
	}
}

func TestSleep(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsole(&buf).Show(Sad); err != nil {
		t.Fatal(err)
	}
	want := ".#.#.\n" +
		".....\n" +
		".....\n" +
		".###.\n" +
		"#...#\n" +
		"\n"
	if v := buf.String(); v != want {
		t.Errorf("unexpected console output:\n%s\nexpected:\n%s", v, want)
	}
}
