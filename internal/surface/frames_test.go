package surface_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heroviz/internal/surface"
)

var _ = Describe("FrameQueue", func() {
	var q *surface.FrameQueue

	BeforeEach(func() {
		q = &surface.FrameQueue{}
	})

	It("runs the pending callback once", func() {
		runs := 0
		q.RequestFrame(func() { runs++ })

		Expect(q.Flush()).To(BeTrue())
		Expect(q.Flush()).To(BeFalse())
		Expect(runs).To(Equal(1))
	})

	It("issues distinct non-zero ids", func() {
		a := q.RequestFrame(func() {})
		b := q.RequestFrame(func() {})
		Expect(a).NotTo(BeZero())
		Expect(b).NotTo(Equal(a))
	})

	It("keeps only the latest request", func() {
		var got string
		q.RequestFrame(func() { got = "first" })
		q.RequestFrame(func() { got = "second" })

		q.Flush()
		Expect(got).To(Equal("second"))
	})

	It("cancels only the named frame", func() {
		stale := q.RequestFrame(func() {})
		q.RequestFrame(func() {})

		q.CancelFrame(stale)
		Expect(q.Pending()).To(BeTrue())
	})

	It("lets a callback request the next frame", func() {
		var tick func()
		runs := 0
		tick = func() {
			runs++
			q.RequestFrame(tick)
		}
		q.RequestFrame(tick)

		q.Flush()
		q.Flush()
		Expect(runs).To(Equal(2))
		Expect(q.Pending()).To(BeTrue())
	})
})

var _ = Describe("Events", func() {
	It("dispatches in registration order until removed", func() {
		var e surface.Events
		var calls []string
		removeA := e.OnResize(func() { calls = append(calls, "a") })
		e.OnResize(func() { calls = append(calls, "b") })

		e.EmitResize()
		removeA()
		removeA()
		e.EmitResize()

		Expect(calls).To(Equal([]string{"a", "b", "b"}))
	})

	It("forwards pointer coordinates", func() {
		var e surface.Events
		var x, y float64
		remove := e.OnPointerMove(func(px, py float64) { x, y = px, py })

		e.EmitPointer(3, 4)
		Expect([]float64{x, y}).To(Equal([]float64{3, 4}))

		remove()
		e.EmitPointer(9, 9)
		Expect(x).To(Equal(3.0))
		_, pointer := e.Listeners()
		Expect(pointer).To(BeZero())
	})
})
