package world_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/vector"
	"github.com/san-kum/rigidsim/internal/world"
)

var _ = Describe("World", func() {
	var w *world.World

	BeforeEach(func() {
		w = world.New()
	})

	Describe("id assignment", func() {
		It("hands out distinct ids and restarts at 1 after reset", func() {
			const n = 25
			ids := make(map[int]struct{}, n)
			for i := 0; i < n; i++ {
				ids[w.Add(body.NewCircle(1, vector.New(float64(i)*10, 0), vector.Zero, 1))] = struct{}{}
			}
			Expect(ids).To(HaveLen(n))

			w.Reset()
			Expect(w.NextID()).To(Equal(1))
			Expect(w.Add(body.NewSquare(1, vector.Zero, vector.Zero, 1))).To(Equal(1))
		})
	})

	Describe("immovable bodies", func() {
		var wall, ball int

		BeforeEach(func() {
			wall = w.Add(body.NewRectangle(0, vector.New(-50, 20), vector.Zero, 100, 10))
			ball = w.Add(body.NewCircle(1, vector.New(-50, 12), vector.New(0, 5), 10))
		})

		It("ignores gravity, custom forces and impulses", func() {
			Expect(w.SetCustomForce(wall, vector.New(50, 50))).To(Succeed())
			Expect(w.ApplyImpulse(wall, vector.New(10, 10))).To(Succeed())
			for i := 0; i < 10; i++ {
				w.Step(1.0 / 60.0)
			}

			b, err := w.Object(wall)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Velocity().IsZero()).To(BeTrue())
			Expect(b.Position()).To(Equal(vector.New(-50, 20)))
		})

		It("appears in contact pairs and pushes the finite-mass body back", func() {
			w.Step(1.0 / 60.0)

			s := w.State()
			Expect(s.HasCollision(wall, ball)).To(BeTrue())

			b, err := w.Object(ball)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Velocity().Y).To(BeNumerically("<", 0))
		})
	})

	Describe("missing bodies", func() {
		It("reports ErrNotFound", func() {
			_, err := w.Object(99)
			Expect(err).To(MatchError(world.ErrNotFound))
			Expect(w.ApplyImpulse(99, vector.New(1, 0))).To(MatchError(world.ErrNotFound))
			Expect(w.Remove(99)).To(BeFalse())
		})
	})

	Describe("a circle dropped onto a static square", func() {
		It("records the contact and stops the circle from sinking faster", func() {
			w.SetGravity(vector.New(0, 9.81))
			circle := w.Add(body.NewCircle(1, vector.New(0, 0), vector.Zero, 10))
			square := w.Add(body.NewSquare(0, vector.New(0, 30), vector.Zero, 20))
			Expect(circle).To(Equal(1))
			Expect(square).To(Equal(2))

			var (
				state world.State
				hit   bool
			)
			for i := 0; i < 600 && !hit; i++ {
				w.Step(1.0 / 60.0)
				state = w.State()
				bs, ok := state.Body(circle)
				Expect(ok).To(BeTrue())
				hit = bs.Position[1] >= 20 && bs.Position[1] <= 40
			}

			Expect(hit).To(BeTrue())
			Expect(state.Collisions).To(ContainElement(world.Pair{A: 1, B: 2}))

			bs, _ := state.Body(circle)
			Expect(bs.Velocity[1]).To(BeNumerically("<=", 0))
		})
	})
})
