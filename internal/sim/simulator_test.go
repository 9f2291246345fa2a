package sim

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
)

type seqRand struct{ n int }

func (r *seqRand) Float64() float64 {
	r.n++
	return float64((r.n*37)%100) / 100
}
func (r *seqRand) Intn(n int) int { r.n++; return r.n % n }

var _ = Describe("Simulator", func() {
	var s *Simulator

	BeforeEach(func() {
		s = NewSimulator(New(DefaultConfig(), &seqRand{}))
	})

	It("runs the requested frames and records metric series", func() {
		m := &bodyCount{}
		s.AddMetric(m)

		result, err := s.Run(context.Background(), RunConfig{Frames: 120, Dt: 16, Bodies: 6})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Frames).To(Equal(120))
		Expect(result.Bodies).To(Equal(6))
		Expect(result.Elapsed).To(BeNumerically("~", 120*16, 1e-6))
		Expect(result.Series["bodies"]).To(HaveLen(120))
		Expect(result.Metrics["bodies"]).To(Equal(6.0))
		Expect(m.samples).To(Equal(120))
	})

	It("keeps every body finite", func() {
		_, err := s.Run(context.Background(), RunConfig{Frames: 600, Dt: 16, Bodies: 12})
		Expect(err).NotTo(HaveOccurred())
		for _, b := range s.World().Bodies() {
			Expect(b.IsFinite()).To(BeTrue())
		}
	})

	DescribeTable("rejects invalid run configs",
		func(cfg RunConfig) {
			_, err := s.Run(context.Background(), cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		},
		Entry("zero dt", RunConfig{Frames: 10, Dt: 0}),
		Entry("negative dt", RunConfig{Frames: 10, Dt: -1}),
		Entry("zero frames", RunConfig{Frames: 0, Dt: 16}),
		Entry("negative bodies", RunConfig{Frames: 10, Dt: 16, Bodies: -1}),
	)

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := s.Run(ctx, RunConfig{Frames: 10, Dt: 16, Bodies: 1})
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Frames).To(Equal(0))
	})
})
