package property_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/ytimocin/dapr-sdk-go/pkg/property"
)

var _ = Describe("Typed properties", func() {
	var src property.MapSource

	BeforeEach(func() {
		src = property.MapSource{Properties: map[string]string{}, Env: map[string]string{}}
	})

	opts := func() []property.Option {
		return []property.Option{property.WithSource(src), property.WithLogger(zerolog.Nop())}
	}

	It("should return strings verbatim", func() {
		p := property.NewString("dapr.sidecar.ip", "DAPR_SIDECAR_IP", "127.0.0.1", opts()...)
		Expect(p.Get()).To(Equal("127.0.0.1"))
		Expect(p.GetWithOverride(" 10.0.0.1 ")).To(Equal(" 10.0.0.1 "))
	})

	DescribeTable("booleans",
		func(raw string, expected bool) {
			p := property.NewBool("dapr.flag", "DAPR_FLAG", false, opts()...)
			Expect(p.GetWithOverride(raw)).To(Equal(expected))
		},
		Entry("true", "true", true),
		Entry("TRUE", "TRUE", true),
		Entry("1", "1", true),
		Entry("padded", " true ", true),
		Entry("invalid falls back", "yes", false),
	)

	It("should parse 64-bit integers and floats", func() {
		i := property.NewInt64("dapr.big", "DAPR_BIG", 0, opts()...)
		Expect(i.GetWithOverride("9223372036854775807")).To(Equal(int64(9223372036854775807)))

		f := property.NewFloat("dapr.ratio", "DAPR_RATIO", 0.5, opts()...)
		Expect(f.GetWithOverride("0.25")).To(Equal(0.25))
		Expect(f.GetWithOverride("quarter")).To(Equal(0.5))
	})

	It("should parse Go durations", func() {
		d := property.NewDuration("dapr.wait", "DAPR_WAIT", time.Second, opts()...)
		Expect(d.GetWithOverride("1m30s")).To(Equal(90 * time.Second))
		Expect(d.GetWithOverride("90")).To(Equal(time.Second))
	})

	It("should parse whole seconds and milliseconds", func() {
		s := property.NewSeconds("dapr.read.timeout", "DAPR_READ_TIMEOUT", time.Minute, opts()...)
		src.Env["DAPR_READ_TIMEOUT"] = "15"
		Expect(s.Get()).To(Equal(15 * time.Second))

		ms := property.NewMilliseconds("dapr.api.timeout", "DAPR_API_TIMEOUT", 0, opts()...)
		Expect(ms.GetWithOverride("250")).To(Equal(250 * time.Millisecond))
		Expect(ms.GetWithOverride("1.5")).To(Equal(time.Duration(0)))
	})

	It("should reject unit counts that overflow a duration", func() {
		s := property.NewSeconds("dapr.read.timeout", "DAPR_READ_TIMEOUT", time.Minute, opts()...)
		src.Properties["dapr.read.timeout"] = "9223372036854775807"

		res := s.Resolve("10000000000")
		Expect(res.Value).To(Equal(time.Minute))
		Expect(res.Tier).To(Equal(property.TierDefault))
		Expect(res.Failures).To(HaveLen(2))
		Expect(res.Failures[0]).To(MatchError(ContainSubstring("out of range")))

		src.Env["DAPR_READ_TIMEOUT"] = "9223372036"
		Expect(s.Get()).To(Equal(9223372036 * time.Second))

		ms := property.NewMilliseconds("dapr.api.timeout", "DAPR_API_TIMEOUT", 0, opts()...)
		Expect(ms.GetWithOverride("-9223372036854776")).To(Equal(time.Duration(0)))
		Expect(ms.GetWithOverride("9223372036854")).To(Equal(9223372036854 * time.Millisecond))
	})

	Context("enums", func() {
		It("should match case-insensitively and return the canonical choice", func() {
			p := property.NewEnum("dapr.api.protocol", "DAPR_API_PROTOCOL", "grpc", []string{"grpc", "http"}, opts()...)
			Expect(p.GetWithOverride("HTTP")).To(Equal("http"))
			Expect(p.GetWithOverride("websocket")).To(Equal("grpc"))
		})

		It("should panic when the default is not a choice", func() {
			Expect(func() {
				property.NewEnum("dapr.api.protocol", "DAPR_API_PROTOCOL", "tcp", []string{"grpc", "http"})
			}).To(Panic())
		})

		It("should describe the allowed choices on failure", func() {
			_, err := property.ParseEnum("grpc", "http")("tcp")
			Expect(err).To(MatchError(ContainSubstring("grpc, http")))
		})
	})

	It("should name tiers", func() {
		Expect(property.TierOverride.String()).To(Equal("override"))
		Expect(property.TierProperty.String()).To(Equal("property"))
		Expect(property.TierEnvironment.String()).To(Equal("environment"))
		Expect(property.TierDefault.String()).To(Equal("default"))
		Expect(property.Tier(42).String()).To(Equal("unknown"))
	})
})
