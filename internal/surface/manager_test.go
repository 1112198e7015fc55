package surface_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/surface"
)

var _ = Describe("Manager", func() {
	var (
		host *fakeHost
		mgr  *surface.Manager
	)

	BeforeEach(func() {
		host = newFakeHost(1000, 800, 1)
		mgr = surface.NewManager(host, surface.DefaultOptions())
	})

	Describe("Mount", func() {
		It("populates the scene within the surface", func() {
			Expect(mgr.State()).To(Equal(surface.Uninitialized))
			Expect(mgr.Mount()).To(Succeed())

			sc := mgr.Scene()
			Expect(sc).NotTo(BeNil())
			Expect(sc.Count(scene.Primary)).To(Equal(6))
			Expect(sc.Count(scene.Secondary)).To(Equal(25))
			Expect(sc.Count(scene.Ambient)).To(Equal(50))
			Expect(sc.Wave).To(HaveLen(80))
			for _, p := range sc.Particles {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<=", 1000))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<=", 800))
			}
			Expect(mgr.State()).To(Equal(surface.Sized))
		})

		It("attaches listeners and schedules one frame", func() {
			Expect(mgr.Mount()).To(Succeed())

			resize, pointer := host.Listeners()
			Expect(resize).To(Equal(1))
			Expect(pointer).To(Equal(1))
			Expect(host.Pending()).To(BeTrue())
		})

		It("rejects a second mount", func() {
			Expect(mgr.Mount()).To(Succeed())
			Expect(mgr.Mount()).To(MatchError(surface.ErrMounted))
		})

		It("rejects mount after unmount", func() {
			Expect(mgr.Mount()).To(Succeed())
			mgr.Unmount()
			Expect(mgr.Mount()).To(MatchError(surface.ErrTornDown))
		})

		It("stays inert without a canvas", func() {
			host.hasCanvas = false
			Expect(mgr.Mount()).To(Succeed())

			Expect(mgr.Inert()).To(BeTrue())
			Expect(host.Pending()).To(BeFalse())
			resize, pointer := host.Listeners()
			Expect(resize).To(BeZero())
			Expect(pointer).To(BeZero())

			host.hasCanvas = true
			host.EmitResize()
			Expect(host.Flush()).To(BeFalse())
			Expect(host.canvas.clears).To(BeZero())
			Expect(mgr.Scene()).To(BeNil())
		})
	})

	Describe("resize", func() {
		It("sizes the backing store for the pixel ratio", func() {
			host.dpr = 1.5
			Expect(mgr.Mount()).To(Succeed())

			Expect(host.canvas.backingW).To(Equal(1500))
			Expect(host.canvas.backingH).To(Equal(1200))
			Expect(host.canvas.scale).To(Equal(1.5))
			Expect(mgr.PixelRatio()).To(Equal(1.5))
		})

		It("caps the pixel ratio at two", func() {
			host.dpr = 3
			Expect(mgr.Mount()).To(Succeed())

			Expect(mgr.PixelRatio()).To(Equal(2.0))
			Expect(host.canvas.backingW).To(Equal(2000))
			Expect(host.canvas.backingH).To(Equal(1600))
			Expect(host.canvas.scale).To(Equal(2.0))
		})

		It("rounds fractional backing sizes", func() {
			host.w, host.h, host.dpr = 333.3, 100.25, 1.5
			Expect(mgr.Mount()).To(Succeed())

			Expect(host.canvas.backingW).To(Equal(500))
			Expect(host.canvas.backingH).To(Equal(150))
		})

		It("is idempotent for an unchanged size", func() {
			host.dpr = 2
			Expect(mgr.Mount()).To(Succeed())
			before := mgr.Scene()

			host.EmitResize()
			host.EmitResize()

			Expect(host.canvas.backingW).To(Equal(2000))
			Expect(host.canvas.backingH).To(Equal(1600))
			Expect(host.canvas.scale).To(Equal(2.0))
			Expect(mgr.Bounds()).To(Equal(scene.Bounds{W: 1000, H: 800}))
			Expect(mgr.Scene()).To(Equal(before))
		})

		It("updates bounds without repopulating", func() {
			Expect(mgr.Mount()).To(Succeed())
			before := mgr.Scene()

			host.resizeTo(400, 300)

			Expect(mgr.Bounds()).To(Equal(scene.Bounds{W: 400, H: 300}))
			Expect(mgr.Scene()).To(Equal(before))
			Expect(host.canvas.backingW).To(Equal(400))
		})

		It("ignores an empty size and populates on the first real one", func() {
			host.w, host.h = 0, 0
			Expect(mgr.Mount()).To(Succeed())
			Expect(mgr.Scene()).To(BeNil())
			Expect(mgr.State()).To(Equal(surface.Uninitialized))

			Expect(host.Flush()).To(BeTrue())
			Expect(host.canvas.clears).To(BeZero())
			Expect(host.Pending()).To(BeTrue())

			host.resizeTo(640, 480)
			Expect(mgr.Scene()).NotTo(BeNil())
			Expect(mgr.Bounds()).To(Equal(scene.Bounds{W: 640, H: 480}))
		})

		It("keeps particles inside a shrunk surface", func() {
			Expect(mgr.Mount()).To(Succeed())
			host.resizeTo(200, 150)

			for i := 0; i < 5; i++ {
				host.Flush()
			}
			for _, p := range mgr.Scene().Particles {
				Expect(p.X).To(BeNumerically("<=", 200))
				Expect(p.Y).To(BeNumerically("<=", 150))
			}
		})
	})

	Describe("pointer", func() {
		It("converts to surface coordinates", func() {
			host.ox, host.oy = 40, 25
			Expect(mgr.Mount()).To(Succeed())
			Expect(mgr.Pointer()).To(Equal(scene.Offscreen))

			host.EmitPointer(140, 125)
			Expect(mgr.Pointer()).To(Equal(scene.Pointer{X: 100, Y: 100}))
		})

		It("does not touch the scene", func() {
			Expect(mgr.Mount()).To(Succeed())
			before := mgr.Scene()

			host.EmitPointer(500, 400)
			Expect(mgr.Scene()).To(Equal(before))
		})
	})

	Describe("frames", func() {
		It("steps, draws and reschedules", func() {
			counter := &tickCounter{}
			opts := surface.DefaultOptions()
			opts.Observers = []sim.Observer{counter}
			mgr = surface.NewManager(host, opts)
			Expect(mgr.Mount()).To(Succeed())

			for i := 0; i < 3; i++ {
				Expect(host.Flush()).To(BeTrue())
			}

			Expect(mgr.Ticks()).To(Equal(3))
			Expect(mgr.State()).To(Equal(surface.Running))
			Expect(host.canvas.clears).To(Equal(3))
			Expect(host.canvas.draws).To(BeNumerically(">", 0))
			Expect(mgr.Scene().Time).To(BeNumerically("~", 0.048, 1e-9))
			Expect(counter.ticks).To(Equal([]int{1, 2, 3}))
			Expect(host.Pending()).To(BeTrue())
		})

		It("skips the step while the canvas is gone", func() {
			Expect(mgr.Mount()).To(Succeed())
			host.hasCanvas = false

			Expect(host.Flush()).To(BeTrue())
			Expect(mgr.Ticks()).To(BeZero())
			Expect(host.Pending()).To(BeTrue())

			host.hasCanvas = true
			Expect(host.Flush()).To(BeTrue())
			Expect(mgr.Ticks()).To(Equal(1))
		})
	})

	Describe("Unmount", func() {
		It("cancels the pending frame and detaches listeners", func() {
			Expect(mgr.Mount()).To(Succeed())
			mgr.Unmount()

			Expect(mgr.State()).To(Equal(surface.TornDown))
			Expect(host.Pending()).To(BeFalse())
			Expect(host.Flush()).To(BeFalse())
			resize, pointer := host.Listeners()
			Expect(resize).To(BeZero())
			Expect(pointer).To(BeZero())
		})

		It("is idempotent", func() {
			Expect(mgr.Mount()).To(Succeed())
			mgr.Unmount()
			Expect(mgr.Unmount).NotTo(Panic())
			Expect(mgr.State()).To(Equal(surface.TornDown))
		})

		It("ignores a resize after teardown", func() {
			Expect(mgr.Mount()).To(Succeed())
			before := mgr.Scene()
			mgr.Unmount()

			host.resizeTo(300, 200)

			Expect(mgr.Bounds()).To(Equal(scene.Bounds{W: 1000, H: 800}))
			Expect(mgr.Scene()).To(Equal(before))
			Expect(host.canvas.backingW).To(Equal(1000))
		})

		It("turns an in-flight frame into a no-op", func() {
			Expect(mgr.Mount()).To(Succeed())

			inflight := host.lastFrame
			Expect(inflight).NotTo(BeNil())
			mgr.Unmount()

			inflight()
			Expect(mgr.Ticks()).To(BeZero())
			Expect(host.Pending()).To(BeFalse())
			Expect(host.canvas.clears).To(BeZero())
		})

		It("can be called before mount", func() {
			mgr.Unmount()
			Expect(mgr.State()).To(Equal(surface.TornDown))
			Expect(mgr.Mount()).To(MatchError(surface.ErrTornDown))
		})
	})
})
