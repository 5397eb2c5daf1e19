package sysprop_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ytimocin/dapr-sdk-go/pkg/secrets"
	"github.com/ytimocin/dapr-sdk-go/pkg/sysprop"
)

type staticLoader map[string]string

func (s staticLoader) Resolve(key string) (string, error) {
	return s[key], nil
}

func (s staticLoader) Name() string {
	return "static"
}

var _ = Describe("Property files", func() {
	var dir string

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Context("LoadFile", func() {
		It("should flatten nested YAML", func() {
			path := write("dapr.yaml", `
dapr:
  http:
    port: 4000
  grpc:
    tls:
      insecure: true
  api.token: abc
tags: [a, b, c]
empty:
`)
			values, err := sysprop.LoadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal(map[string]string{
				"dapr.http.port":         "4000",
				"dapr.grpc.tls.insecure": "true",
				"dapr.api.token":         "abc",
				"tags":                   "a,b,c",
				"empty":                  "",
			}))
		})

		It("should flatten TOML tables", func() {
			path := write("dapr.toml", `
[dapr.http]
port = 4000

[dapr.api]
timeoutMilliseconds = 250
protocol = "http"
`)
			values, err := sysprop.LoadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue("dapr.http.port", "4000"))
			Expect(values).To(HaveKeyWithValue("dapr.api.timeoutMilliseconds", "250"))
			Expect(values).To(HaveKeyWithValue("dapr.api.protocol", "http"))
		})

		It("should expand secret references", func() {
			secrets.Register("static", staticLoader{"token": "s3cr3t"})
			DeferCleanup(secrets.Unregister, "static")

			path := write("secret.yml", "dapr.api.token: ${static:token}\n")
			values, err := sysprop.LoadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue("dapr.api.token", "s3cr3t"))
		})

		It("should keep literal dollars", func() {
			path := write("literal.yaml", `
dapr:
  api:
    token: "abc$123xyz"
other: "pa$$word"
escaped: "$${static:token}"
`)
			values, err := sysprop.LoadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal(map[string]string{
				"dapr.api.token": "abc$123xyz",
				"other":          "pa$$word",
				"escaped":        "${static:token}",
			}))
		})

		It("should name the property whose reference resolved empty", func() {
			var buf bytes.Buffer
			previous := log.Logger
			log.Logger = zerolog.New(&buf)
			DeferCleanup(func() { log.Logger = previous })

			path := write("empty.yaml", "dapr.api.token: ${env:SYSPROP_TEST_UNSET_VARIABLE}\n")
			values, err := sysprop.LoadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue("dapr.api.token", ""))
			Expect(buf.String()).To(ContainSubstring("Reference in property dapr.api.token resolved to an empty value"))
			Expect(buf.String()).To(ContainSubstring(`"reference":"env:SYSPROP_TEST_UNSET_VARIABLE"`))
		})

		It("should fail on unknown secret prefixes", func() {
			path := write("secret.yml", "dapr.api.token: ${nowhere:token}\n")
			_, err := sysprop.LoadFile(path)
			Expect(err).To(MatchError(ContainSubstring("no secret loader registered")))
		})

		It("should reject unknown extensions", func() {
			path := write("dapr.ini", "a=b")
			_, err := sysprop.LoadFile(path)
			Expect(err).To(MatchError(ContainSubstring("unsupported property file extension")))
		})

		It("should report missing and malformed files", func() {
			_, err := sysprop.LoadFile(filepath.Join(dir, "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("error reading property file")))

			path := write("broken.toml", "[dapr\nport = ")
			_, err = sysprop.LoadFile(path)
			Expect(err).To(MatchError(ContainSubstring("error decoding property file")))
		})
	})

	Context("LoadFiles", func() {
		It("should let later files win", func() {
			first := write("base.yaml", "dapr.http.port: 3500\ndapr.grpc.port: 50001\n")
			second := write("local.toml", "\"dapr.http.port\" = 4000\n")

			values, err := sysprop.LoadFiles(first, second)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue("dapr.http.port", "4000"))
			Expect(values).To(HaveKeyWithValue("dapr.grpc.port", "50001"))
		})

		It("should store nothing when a file fails", func() {
			good := write("good.yaml", "a: 1\n")
			store := sysprop.NewStore()

			err := store.Load(good, filepath.Join(dir, "missing.yaml"))
			Expect(err).To(HaveOccurred())
			Expect(store.Len()).To(BeZero())

			Expect(store.Load(good)).To(Succeed())
			Expect(store.Get("a")).To(Equal("1"))
		})
	})

	Context("definitions", func() {
		DescribeTable("ParseDefinition",
			func(def, key, value string) {
				k, v, err := sysprop.ParseDefinition(def)
				Expect(err).NotTo(HaveOccurred())
				Expect(k).To(Equal(key))
				Expect(v).To(Equal(value))
			},
			Entry("key and value", "dapr.http.port=4000", "dapr.http.port", "4000"),
			Entry("value with equals", "dapr.api.token=a=b", "dapr.api.token", "a=b"),
			Entry("bare key", "dapr.grpc.tls.insecure", "dapr.grpc.tls.insecure", ""),
			Entry("empty value", "dapr.api.token=", "dapr.api.token", ""),
		)

		It("should reject an empty name", func() {
			_, _, err := sysprop.ParseDefinition("=4000")
			Expect(err).To(MatchError(ContainSubstring("empty name")))

			_, err = sysprop.ParseDefinitions([]string{"a=1", " =2"})
			Expect(err).To(HaveOccurred())
		})

		It("should let later definitions win", func() {
			values, err := sysprop.ParseDefinitions([]string{"a=1", "a=2", "b=3"})
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal(map[string]string{"a": "2", "b": "3"}))
		})
	})

	It("should format values as sorted lines", func() {
		Expect(sysprop.Format(map[string]string{"b": "2", "a": "1"})).To(Equal("a=1\nb=2\n"))
	})
})
