package handle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

const tol = 1e-9

func expectVec(got, want geom.Vec2) {
	GinkgoHelper()
	Expect(got.X).To(BeNumerically("~", want.X, tol), "x of %v", got)
	Expect(got.Y).To(BeNumerically("~", want.Y, tol), "y of %v", got)
}

var _ = Describe("Handle", func() {
	var (
		table    *arena.Geometry
		tuning   handle.Tuning
		h1, h2   *handle.Handle
		farAway  = geom.V(0, -400)
		pointer1 = handle.PointerID(7)
		pointer2 = handle.PointerID(9)
	)

	BeforeEach(func() {
		table = arena.Default()
		tuning = handle.DefaultTuning()
		h1 = handle.New(handle.One, geom.Zero, table, &tuning)
		h2 = handle.New(handle.Two, farAway, table, &tuning)
	})

	Describe("pointer binding", func() {
		It("starts free with the mass of a free body", func() {
			Expect(h1.Held()).To(BeFalse())
			Expect(h1.Mass()).To(Equal(handle.FreeMass))
			_, ok := h1.Pointer()
			Expect(ok).To(BeFalse())
		})

		It("resets velocity and captures the pointer on grab", func() {
			Expect(h1.Launch(geom.V(2, 1))).To(BeTrue())
			Expect(h1.Grab(pointer1)).To(BeTrue())

			Expect(h1.Held()).To(BeTrue())
			Expect(h1.Velocity()).To(Equal(geom.Zero))
			Expect(h1.Mass()).To(Equal(collision.ImmovableMass))
			id, ok := h1.Pointer()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(pointer1))
		})

		It("ignores a second grab while held", func() {
			h1.Grab(pointer1)
			Expect(h1.Grab(pointer2)).To(BeFalse())
			id, _ := h1.Pointer()
			Expect(id).To(Equal(pointer1))
		})

		It("only follows moves from the holding pointer", func() {
			Expect(h1.MoveTo(pointer1, geom.V(10, 10))).To(BeFalse())
			h1.Grab(pointer1)
			Expect(h1.MoveTo(pointer2, geom.V(10, 10))).To(BeFalse())
			Expect(h1.Position()).To(Equal(geom.Zero))
			Expect(h1.MoveTo(pointer1, geom.V(10, 10))).To(BeTrue())
			Expect(h1.Position()).To(Equal(geom.V(10, 10)))
		})

		It("clamps held positions to the legal range", func() {
			h1.Grab(pointer1)
			h1.MoveTo(pointer1, geom.V(1000, -1000))
			Expect(h1.Position()).To(Equal(geom.V(260, -460)))
		})

		It("rejects non-finite pointer positions", func() {
			h1.Grab(pointer1)
			Expect(h1.MoveTo(pointer1, geom.V(math.NaN(), 0))).To(BeFalse())
			Expect(h1.Position().IsFinite()).To(BeTrue())
		})

		It("releases only for the holding pointer", func() {
			h1.Grab(pointer1)
			Expect(h1.Release(pointer2)).To(BeFalse())
			Expect(h1.Held()).To(BeTrue())
			Expect(h1.Release(pointer1)).To(BeTrue())
			Expect(h1.Held()).To(BeFalse())
			Expect(h1.Release(pointer1)).To(BeFalse())
		})

		It("refuses to launch a held handle", func() {
			h1.Grab(pointer1)
			Expect(h1.Launch(geom.V(1, 0))).To(BeFalse())
			Expect(h1.Velocity()).To(Equal(geom.Zero))
		})
	})

	Describe("held update", func() {
		const dt = 10.0

		BeforeEach(func() {
			h1.Grab(pointer1)
		})

		It("has no velocity before the pointer moves", func() {
			r := h1.Update(dt, h2)
			Expect(r.Held).To(BeTrue())
			Expect(h1.Velocity()).To(Equal(geom.Zero))
		})

		It("smooths the pointer velocity over three samples", func() {
			// 30 units per 10ms with reducer 1.5 is an instant velocity of 2.
			expected := []float64{2.0 / 3, 4.0 / 3, 2, 2}
			for i, want := range expected {
				h1.MoveTo(pointer1, geom.V(30*float64(i+1), 0))
				h1.Update(dt, h2)
				expectVec(h1.Velocity(), geom.V(want, 0))
			}
		})

		It("limits the derived speed", func() {
			for i := 1; i <= 3; i++ {
				h1.MoveTo(pointer1, geom.V(0, 100*float64(i)))
				h1.Update(dt, h2)
			}
			Expect(h1.Speed()).To(BeNumerically("~", tuning.MaxHeldSpeed, tol))
			Expect(h1.Velocity().Y).To(BeNumerically(">", 0))
		})

		It("does not integrate its own position", func() {
			h1.MoveTo(pointer1, geom.V(30, 0))
			h1.Update(dt, h2)
			h1.Update(dt, h2)
			Expect(h1.Position()).To(Equal(geom.V(30, 0)))
		})

		It("ignores a zero time step", func() {
			h1.MoveTo(pointer1, geom.V(30, 0))
			h1.Update(0, h2)
			Expect(h1.Velocity()).To(Equal(geom.Zero))
			Expect(h1.Velocity().IsFinite()).To(BeTrue())
		})

		It("keeps the derived velocity when released", func() {
			h1.MoveTo(pointer1, geom.V(30, 0))
			h1.Update(dt, h2)
			h1.Release(pointer1)
			expectVec(h1.Velocity(), geom.V(2.0/3, 0))
		})

		It("starts a fresh window on every grab", func() {
			h1.MoveTo(pointer1, geom.V(30, 0))
			h1.Update(dt, h2)
			h1.Release(pointer1)
			h1.Grab(pointer2)
			h1.Update(dt, h2)
			Expect(h1.Velocity()).To(Equal(geom.Zero))
		})
	})

	Describe("free update", func() {
		It("moves and applies friction", func() {
			h1.Launch(geom.V(1, 0))
			r := h1.Update(10, h2)

			Expect(r).To(Equal(handle.Report{}))
			expectVec(h1.Position(), geom.V(10, 0))
			expectVec(h1.Velocity(), geom.V(1-tuning.Friction, 0))
		})

		It("snaps slow velocities to exactly zero", func() {
			h1.Launch(geom.V(0.0005, 0))
			h1.Update(10, h2)
			Expect(h1.Velocity()).To(Equal(geom.Zero))
		})

		It("limits speed before friction", func() {
			h1.Launch(geom.V(30, 40))
			h1.Update(1, h2)
			Expect(h1.Speed()).To(BeNumerically("~", tuning.MaxFreeSpeed*(1-tuning.Friction), tol))
		})

		It("reflects off a wall it is about to cross", func() {
			h1.Reset(geom.V(255, 0))
			h1.Launch(geom.V(1, 0))
			r := h1.Update(10, h2)

			Expect(r.Wall).To(Equal(collision.Right))
			expectVec(h1.Position(), geom.V(245, 0))
			expectVec(h1.Velocity(), geom.V(-(1 - tuning.Friction), 0))
		})

		It("reflects one side in a corner and clamps the other", func() {
			h1.Reset(geom.V(-255, -455))
			h1.Launch(geom.V(-1, -1))
			r := h1.Update(10, h2)

			Expect(r.Wall).To(Equal(collision.Left))
			expectVec(h1.Position(), geom.V(-245, -460))
			f := 1 - tuning.Friction
			expectVec(h1.Velocity(), geom.V(f, f))
		})

		It("stays inside the table when launched diagonally into a corner", func() {
			min, max := table.MinHandlePosition, table.MaxHandlePosition
			h1.Reset(min.Add(geom.V(10, 10)))
			h1.Launch(geom.V(-5, -5))

			for i := 0; i < 240; i++ {
				h1.Update(1000.0/60, h2)
				p := h1.Position()
				Expect(p.X).To(BeNumerically(">=", min.X), "tick %d: %v", i, p)
				Expect(p.Y).To(BeNumerically(">=", min.Y), "tick %d: %v", i, p)
				Expect(p.X).To(BeNumerically("<=", max.X), "tick %d: %v", i, p)
				Expect(p.Y).To(BeNumerically("<=", max.Y), "tick %d: %v", i, p)
				if i == 0 {
					Expect(h1.Velocity().X).To(BeNumerically(">", 0))
					Expect(h1.Velocity().Y).To(BeNumerically(">", 0))
				}
			}
		})

		It("keeps an inward velocity when pulled back from beyond the wall", func() {
			h1.Reset(geom.V(262, 0))
			h1.Launch(geom.V(-1, 0))
			h1.Update(1, h2)
			Expect(h1.Position().X).To(BeNumerically("<=", table.MaxHandlePosition.X))
			Expect(h1.Velocity().X).To(BeNumerically("<", 0))
		})

		It("is not pushed through the wall by a held opponent", func() {
			maxX := table.MaxHandlePosition.X
			h2.Reset(geom.V(maxX-10, 0))
			h1.Reset(geom.V(maxX-150, 0))
			h1.Grab(pointer1)

			dt := 1000.0 / 60
			for i := 0; i < 300; i++ {
				if i < 22 {
					h1.MoveTo(pointer1, h1.Position().Add(geom.V(5, 0)))
				}
				h1.Update(dt, h2)
				h2.Update(dt, h1)
				Expect(h2.Position().X).To(BeNumerically("<=", maxX), "tick %d: %v", i, h2.Position())
			}

			Expect(h2.Position().X).To(BeNumerically("~", maxX, tol))
			Expect(h2.Velocity().X).To(BeNumerically("<=", 0))
			Expect(h2.Position().IsFinite()).To(BeTrue())
		})

		It("bounces off a held opponent as off a wall", func() {
			h2.Reset(geom.V(90, 0))
			h2.Grab(pointer2)
			h1.Launch(geom.V(1, 0))

			r := h1.Update(10, h2)

			Expect(r.HitOpponent).To(BeTrue())
			Expect(r.Depenetrated).To(BeFalse())
			expectVec(h1.Position(), geom.Zero)
			Expect(h1.Velocity().X).To(BeNumerically("~", -(1-tuning.Friction), 1e-6))
			Expect(h2.Position()).To(Equal(geom.V(90, 0)))
			Expect(h2.Velocity()).To(Equal(geom.Zero))
		})

		It("exchanges velocities with an equal free opponent", func() {
			h1.Reset(geom.V(-41, 0))
			h2.Reset(geom.V(41, 0))
			h1.Launch(geom.V(1, 0))
			h2.Launch(geom.V(-1, 0))

			r := h1.Update(1, h2)

			Expect(r.HitOpponent).To(BeTrue())
			expectVec(h1.Position(), geom.V(-41, 0))
			expectVec(h1.Velocity(), geom.V(-(1 - tuning.Friction), 0))
			expectVec(h2.Position(), geom.V(42, 0))
			expectVec(h2.Velocity(), geom.V(1, 0))
		})

		It("ignores an opponent it is already moving away from", func() {
			h1.Reset(geom.V(-30, 0))
			h2.Reset(geom.V(30, 0))
			h1.Launch(geom.V(-1, 0))

			r := h1.Update(1, h2)

			Expect(r.HitOpponent).To(BeFalse())
			Expect(r.Depenetrated).To(BeTrue())
			Expect(h1.Velocity().X).To(BeNumerically("<", 0))
			expectVec(h1.Position(), geom.V(-50, 0))
		})

		It("pushes itself out of an overlapping opponent", func() {
			h1.Reset(geom.V(-30, 0))
			h2.Reset(geom.V(30, 0))

			r := h1.Update(1, h2)

			Expect(r.Depenetrated).To(BeTrue())
			expectVec(h1.Position(), geom.V(-50, 0))
			Expect(collision.Penetration(h1.Circle(), h2.Circle())).To(BeNumerically("<=", tol))
			Expect(h1.Velocity()).To(Equal(geom.Zero))
		})

		It("separates coincident handles without NaN", func() {
			h2.Reset(geom.Zero)

			h1.Update(16, h2)
			h2.Update(16, h1)

			Expect(h1.Position().IsFinite()).To(BeTrue())
			Expect(h2.Position().IsFinite()).To(BeTrue())
			Expect(h1.Velocity().IsFinite()).To(BeTrue())
			Expect(h1.Position().Distance(h2.Position())).To(BeNumerically("~", 2*table.HandleRadius, tol))
		})

		It("ignores non-finite time steps", func() {
			h1.Launch(geom.V(1, 0))
			h1.Update(math.Inf(1), h2)
			h1.Update(math.NaN(), h2)
			Expect(h1.Position()).To(Equal(geom.Zero))
			Expect(h1.Velocity()).To(Equal(geom.V(1, 0)))
		})
	})

	Describe("tuning", func() {
		It("accepts the defaults", func() {
			Expect(handle.DefaultTuning().Validate()).To(Succeed())
		})

		DescribeTable("rejects out of range values",
			func(mutate func(*handle.Tuning)) {
				t := handle.DefaultTuning()
				mutate(&t)
				Expect(t.Validate()).NotTo(Succeed())
			},
			Entry("friction of one", func(t *handle.Tuning) { t.Friction = 1 }),
			Entry("negative friction", func(t *handle.Tuning) { t.Friction = -0.1 }),
			Entry("zero reducer", func(t *handle.Tuning) { t.VelocityReducer = 0 }),
			Entry("zero held speed", func(t *handle.Tuning) { t.MaxHeldSpeed = 0 }),
			Entry("negative epsilon", func(t *handle.Tuning) { t.RestEpsilon = -1 }),
			Entry("nan friction", func(t *handle.Tuning) { t.Friction = math.NaN() }),
			Entry("nan reducer", func(t *handle.Tuning) { t.VelocityReducer = math.NaN() }),
			Entry("nan free speed", func(t *handle.Tuning) { t.MaxFreeSpeed = math.NaN() }),
			Entry("infinite held speed", func(t *handle.Tuning) { t.MaxHeldSpeed = math.Inf(1) }),
			Entry("nan epsilon", func(t *handle.Tuning) { t.RestEpsilon = math.NaN() }),
		)
	})
})
