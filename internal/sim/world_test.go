package sim

import (
	"errors"
	"image/color"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

var red = color.RGBA{R: 255, A: 255}

var _ = Describe("World", func() {
	var w *World

	BeforeEach(func() {
		w = New(DefaultConfig(), fixedRand{f: 0.5, i: 7})
	})

	Describe("Spawn", func() {
		It("creates a body at the pointer with radius, mass and zero velocity", func() {
			w.PointerMove(dynamo.V(400, 300))
			b, err := w.Spawn()

			Expect(err).NotTo(HaveOccurred())
			Expect(b.Radius).To(Equal(50.0))
			Expect(b.Mass).To(BeNumerically("~", 30, 1e-9))
			Expect(b.Pos).To(Equal(dynamo.V(400, 300)))
			Expect(b.Vel).To(Equal(dynamo.Vec2{}))
			Expect(b.Color).To(Equal(color.RGBA{R: 7, G: 7, B: 7, A: 255}))
			Expect(w.Bodies()).To(HaveLen(1))
		})

		It("assigns increasing ids in creation order", func() {
			a, _ := w.Spawn()
			b, _ := w.Spawn()
			Expect(b.ID).To(BeNumerically(">", a.ID))
			Expect(w.Bodies()[0]).To(BeIdenticalTo(a))
		})

		It("keeps the radius within the spawn range", func() {
			for _, f := range []float64{0, 0.999999} {
				w = New(DefaultConfig(), fixedRand{f: f})
				b, _ := w.Spawn()
				Expect(b.Radius).To(BeNumerically(">=", 25))
				Expect(b.Radius).To(BeNumerically("<=", 74))
			}
		})
	})

	Describe("coincident bodies", func() {
		It("stays finite after a frame", func() {
			w.PointerMove(dynamo.V(600, 300))
			w.Spawn()
			w.Spawn()

			w.Step(16)

			Expect(w.Validate()).To(Succeed())
			for _, b := range w.Bodies() {
				Expect(b.IsFinite()).To(BeTrue())
			}
		})
	})

	Describe("Validate", func() {
		It("reports non-finite bodies with frame context", func() {
			b, _ := w.SpawnAt(dynamo.V(100, 100), 30, red)
			w.Step(16)
			b.Vel.X = math.NaN()

			err := w.Validate()
			Expect(err).To(MatchError(dynamo.ErrInvalidState))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Body).To(Equal(b.ID))
			Expect(simErr.Frame).To(Equal(1))
		})
	})

	Describe("dragging", func() {
		var dragged, other *physics.Body

		BeforeEach(func() {
			dragged, _ = w.SpawnAt(dynamo.V(300, 300), 50, red)
			other, _ = w.SpawnAt(dynamo.V(340, 300), 50, red)
			w.PointerMove(dynamo.V(290, 300))
			w.PrimaryDown()
		})

		It("follows the pointer without gravity or collision displacement", func() {
			for i := 0; i < 30; i++ {
				w.Step(16)
				Expect(dragged.Pos).To(Equal(dynamo.V(300, 300)))
				Expect(dragged.Vel).To(Equal(dynamo.Vec2{}))
			}
			Expect(w.Collisions()).To(Equal(0))

			w.PointerMove(dynamo.V(500, 400))
			w.Step(16)
			Expect(dragged.Pos).To(Equal(dynamo.V(510, 400)))
		})

		It("lets go on release", func() {
			w.PrimaryUp()
			w.Step(16)
			Expect(dragged.Vel.Y).To(BeNumerically(">", 0))
			Expect(other.Pos).NotTo(Equal(dynamo.V(340, 300)))
		})
	})

	Describe("pulling", func() {
		It("launches away from the pointer scaled by the last frame time", func() {
			b, _ := w.SpawnAt(dynamo.V(100, 100), 50, red)
			w.PointerMove(dynamo.V(100, 100))
			w.SecondaryDown()

			w.Step(16)
			Expect(b.Vel).To(Equal(dynamo.Vec2{}))

			w.PointerMove(dynamo.V(200, 100))
			seg, ok := w.Guide()
			Expect(ok).To(BeTrue())
			Expect(seg.To).To(Equal(dynamo.V(200, 100)))

			w.SecondaryUp()
			Expect(b.Vel.X).To(BeNumerically("~", -1.8666666, 1e-6))
			Expect(b.Vel.Y).To(BeNumerically("~", 0, 1e-12))
			_, ok = w.Guide()
			Expect(ok).To(BeFalse())
		})
	})

	DescribeTable("pair modes",
		func(mode PairMode, resolutions int) {
			cfg := DefaultConfig()
			cfg.Pairs = mode
			w = New(cfg, fixedRand{})
			w.SpawnAt(dynamo.V(100, 100), 20, red)
			w.SpawnAt(dynamo.V(130, 100), 20, red)

			w.Step(0)

			Expect(w.Collisions()).To(Equal(resolutions))
			a, b := w.Bodies()[0], w.Bodies()[1]
			Expect(a.Pos.Dist(b.Pos)).To(BeNumerically("~", 40, 1e-9))
		},
		Entry("ordered visits the pair from both sides", PairsOrdered, 2),
		Entry("unique visits the pair once", PairsUnique, 1),
	)

	Describe("Frame", func() {
		t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		It("measures elapsed time between frames", func() {
			obs := &countingObserver{}
			w.AddObserver(obs)

			w.Frame(t0)
			Expect(w.LastDt()).To(Equal(0.0))

			w.Frame(t0.Add(16 * time.Millisecond))
			Expect(w.LastDt()).To(BeNumerically("~", 16, 1e-9))
			Expect(obs.frames).To(Equal(2))
			Expect(w.Elapsed()).To(BeNumerically("~", 16, 1e-9))
		})

		It("skips the paused interval", func() {
			w.Frame(t0)
			w.Pause()
			w.Frame(t0.Add(time.Second))
			Expect(w.FrameCount()).To(Equal(1))

			w.Resume(t0.Add(2 * time.Second))
			w.Frame(t0.Add(2*time.Second + 10*time.Millisecond))
			Expect(w.LastDt()).To(BeNumerically("~", 10, 1e-9))
		})

		It("caps long frames when configured", func() {
			cfg := DefaultConfig()
			cfg.MaxDt = 50
			w = New(cfg, fixedRand{})
			w.Frame(t0)
			w.Frame(t0.Add(time.Second))
			Expect(w.LastDt()).To(Equal(50.0))
		})
	})

	Describe("capacity", func() {
		BeforeEach(func() {
			cfg := DefaultConfig()
			cfg.MaxBodies = 2
			w = New(cfg, fixedRand{f: 0.5})
		})

		It("evicts the oldest body", func() {
			w.Spawn()
			w.Spawn()
			w.Spawn()

			Expect(w.Bodies()).To(HaveLen(2))
			Expect(w.Bodies()[0].ID).To(Equal(dynamo.BodyID(2)))
		})

		It("never evicts a manipulated body", func() {
			w.PointerMove(dynamo.V(400, 300))
			w.Spawn()
			w.PointerMove(dynamo.V(800, 300))
			w.Spawn()
			w.PointerMove(dynamo.V(400, 300))
			w.PrimaryDown()

			w.Spawn()

			ids := []dynamo.BodyID{w.Bodies()[0].ID, w.Bodies()[1].ID}
			Expect(ids).To(Equal([]dynamo.BodyID{1, 3}))
		})

		It("fails when every body is manipulated", func() {
			cfg := DefaultConfig()
			cfg.MaxBodies = 1
			w = New(cfg, fixedRand{f: 0.5})
			w.PointerMove(dynamo.V(400, 300))
			w.Spawn()
			w.PrimaryDown()

			_, err := w.Spawn()
			Expect(err).To(MatchError(dynamo.ErrCapacity))
		})
	})

	Describe("Remove", func() {
		It("deletes the body under the pointer and ends its drag", func() {
			w.PointerMove(dynamo.V(400, 300))
			w.Spawn()
			w.PointerMove(dynamo.V(800, 300))
			w.Spawn()
			w.PrimaryDown()

			id, ok := w.RemoveAtPointer()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(dynamo.BodyID(2)))
			Expect(w.Bodies()).To(HaveLen(1))
			_, dragging := w.Input().Dragging()
			Expect(dragging).To(BeFalse())
		})

		It("releases a pull so the guide disappears", func() {
			w.PointerMove(dynamo.V(400, 300))
			b, _ := w.Spawn()
			w.SecondaryDown()

			Expect(w.Remove(b.ID)).To(BeTrue())
			_, pulling := w.Input().Pulling()
			Expect(pulling).To(BeFalse())
			_, ok := w.Guide()
			Expect(ok).To(BeFalse())
		})

		It("reports unknown ids and empty space", func() {
			Expect(w.Remove(42)).To(BeFalse())
			w.PointerMove(dynamo.V(10, 10))
			_, ok := w.RemoveAtPointer()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("gestures", func() {
		It("does not drag a body that is being pulled", func() {
			w.PointerMove(dynamo.V(400, 300))
			b, _ := w.Spawn()
			w.SecondaryDown()
			w.PrimaryDown()

			Expect(w.Input().IsPulled(b.ID)).To(BeTrue())
			Expect(w.Input().IsDragged(b.ID)).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("drops bodies and pointer slots", func() {
			w.PointerMove(dynamo.V(400, 300))
			w.Spawn()
			w.PrimaryDown()

			w.Reset()

			Expect(w.Bodies()).To(BeEmpty())
			_, dragging := w.Input().Dragging()
			Expect(dragging).To(BeFalse())
		})
	})
})
