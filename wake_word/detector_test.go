package wake_word

import (
	"errors"
	"fmt"
	"testing"
)

type fakeSource struct {
	frames [][]int16
	pos    int
}

func (f *fakeSource) ReadFrame(n int) ([]int16, error) {
	if f.pos >= len(f.frames) {
		return nil, fmt.Errorf("no more audio")
	}

	frame := f.frames[f.pos]
	f.pos++

	if len(frame) != n {
		return nil, fmt.Errorf("expected frame length %d, got %d", n, len(frame))
	}

	return frame, nil
}

func (f *fakeSource) Close() error {
	return nil
}

type fakeClassifier struct {
	frameLength int
	matchAt     int
	seen        int
	err         error
}

func (f *fakeClassifier) FrameLength() int {
	return f.frameLength
}

func (f *fakeClassifier) Process(_ []int16) (int, error) {
	if f.err != nil {
		return -1, f.err
	}

	f.seen++

	if f.seen == f.matchAt {
		return 0, nil
	}

	return -1, nil
}

func (f *fakeClassifier) Close() error {
	return nil
}

func sequentialFrames(count, length int) [][]int16 {
	frames := make([][]int16, count)
	for i := range frames {
		frame := make([]int16, length)
		for j := range frame {
			frame[j] = int16(i)
		}

		frames[i] = frame
	}

	return frames
}

func TestDetector_Listen(t *testing.T) {
	t.Run("returns the pre-roll window captured just before detection", func(t *testing.T) {
		classifier := &fakeClassifier{frameLength: 4, matchAt: 10}

		// capacity = ceil(1.0 * 16 / 4) = 4 frames
		detector, err := New(&Config{Classifier: classifier, BufferSeconds: 1.0, SampleRate: 16})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		src := &fakeSource{frames: sequentialFrames(12, 4)}

		preroll, err := detector.Listen(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(preroll) != 4 {
			t.Fatalf("expected 4 pre-roll frames, got %d", len(preroll))
		}

		for i, want := range []int16{6, 7, 8, 9} {
			if preroll[i][0] != want {
				t.Errorf("pre-roll frame %d: expected %d, got %d", i, want, preroll[i][0])
			}
		}
	})

	t.Run("second listen cycle starts with a fresh pre-roll buffer", func(t *testing.T) {
		classifier := &fakeClassifier{frameLength: 4, matchAt: 2}

		detector, err := New(&Config{Classifier: classifier, BufferSeconds: 1.0, SampleRate: 16})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		src := &fakeSource{frames: sequentialFrames(6, 4)}

		if _, err := detector.Listen(src); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		classifier.matchAt = 3 // one more frame after the two consumed already

		preroll, err := detector.Listen(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(preroll) != 1 {
			t.Errorf("expected 1 pre-roll frame in second cycle, got %d", len(preroll))
		}
	})

	t.Run("missing classifier degrades to an empty pre-roll", func(t *testing.T) {
		detector, err := New(&Config{BufferSeconds: 1.0, SampleRate: 16})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		preroll, err := detector.Listen(&fakeSource{})
		if !errors.Is(err, ErrDetectorUnavailable) {
			t.Errorf("expected ErrDetectorUnavailable, got %v", err)
		}

		if len(preroll) != 0 {
			t.Errorf("expected empty pre-roll, got %d frames", len(preroll))
		}
	})

	t.Run("classifier errors surface to the caller", func(t *testing.T) {
		classifier := &fakeClassifier{frameLength: 4, err: fmt.Errorf("engine crashed")}

		detector, err := New(&Config{Classifier: classifier, BufferSeconds: 1.0, SampleRate: 16})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := detector.Listen(&fakeSource{frames: sequentialFrames(1, 4)}); err == nil {
			t.Error("expected an error from the classifier")
		}
	})
}
