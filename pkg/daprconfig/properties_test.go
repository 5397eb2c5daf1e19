package daprconfig_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/ytimocin/dapr-sdk-go/pkg/daprconfig"
	"github.com/ytimocin/dapr-sdk-go/pkg/property"
)

var _ = Describe("Properties", func() {
	var src property.MapSource

	BeforeEach(func() {
		src = property.MapSource{
			Properties: map[string]string{"dapr.http.port": "5000"},
			Env: map[string]string{
				"DAPR_HTTP_PORT": "6000",
				"DAPR_GRPC_PORT": "not-a-port",
			},
		}
	})

	It("should prefer overrides over the other tiers", func() {
		props := daprconfig.NewProperties(map[string]string{"dapr.http.port": "4000"}, daprconfig.WithSource(src))

		res := daprconfig.Resolve(props, daprconfig.HTTPPort)
		Expect(res.Value).To(Equal(4000))
		Expect(res.Tier).To(Equal(property.TierOverride))
	})

	It("should fall through to the shared sources", func() {
		props := daprconfig.NewProperties(nil, daprconfig.WithSource(src))

		Expect(daprconfig.Get(props, daprconfig.HTTPPort)).To(Equal(5000))
		Expect(daprconfig.Get(props, daprconfig.GRPCPort)).To(Equal(50001))
		Expect(daprconfig.Get(props, daprconfig.SidecarIP)).To(Equal("127.0.0.1"))
	})

	It("should fall back past an invalid override", func() {
		props := daprconfig.NewProperties(map[string]string{"dapr.http.port": "abc"}, daprconfig.WithSource(src))

		res := daprconfig.Resolve(props, daprconfig.HTTPPort)
		Expect(res.Value).To(Equal(5000))
		Expect(res.Tier).To(Equal(property.TierProperty))
		Expect(res.Failures).To(HaveLen(1))
	})

	It("should keep its own copy of the overrides", func() {
		overrides := map[string]string{"dapr.api.token": "abc"}
		props := daprconfig.NewProperties(overrides, daprconfig.WithSource(src))

		overrides["dapr.api.token"] = "changed"
		overrides["dapr.http.port"] = "1"

		Expect(props.Override("dapr.api.token")).To(Equal("abc"))
		Expect(props.Override("dapr.http.port")).To(BeEmpty())
		Expect(daprconfig.Get(props, daprconfig.APIToken)).To(Equal("abc"))
	})

	It("should inspect a single property", func() {
		props := daprconfig.NewProperties(nil, daprconfig.WithSource(src))

		Expect(props.Inspect(daprconfig.GRPCPort)).To(Equal(property.Inspection{
			Name:     "dapr.grpc.port",
			EnvName:  "DAPR_GRPC_PORT",
			Value:    "50001",
			Default:  "50001",
			Tier:     property.TierDefault,
			Failures: 1,
		}))
	})

	It("should inspect the whole catalog in order", func() {
		props := daprconfig.NewProperties(map[string]string{"dapr.sidecar.ip": "10.0.0.1"}, daprconfig.WithSource(src))

		all := props.InspectAll()
		Expect(all).To(HaveLen(len(daprconfig.All())))
		Expect(all[0].Name).To(Equal("dapr.sidecar.ip"))
		Expect(all[0].Value).To(Equal("10.0.0.1"))
		Expect(all[0].Tier).To(Equal(property.TierOverride))
		Expect(all[1].Value).To(Equal("5000"))
	})
})
