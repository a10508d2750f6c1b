package config_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/sarchlab/slipswitch/config"
)

var _ = Describe("Config", func() {
	It("should validate its own defaults", func() {
		Expect(config.Default().Validate()).To(Succeed())
	})

	It("should load a scenario over the defaults", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "scenario.yaml")

		content := []byte(`
switch:
  ports: 16
  rounds: 2
traffic:
  pattern: constant
  rate: 0.5
run:
  slots: 500
  driver: event
`)
		Expect(os.WriteFile(path, content, 0o644)).To(Succeed())

		cfg, err := config.Load(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(cfg.Switch.Ports).To(Equal(16))
		Expect(cfg.Switch.Rounds).To(Equal(2))
		Expect(cfg.Traffic.Pattern).To(Equal("constant"))
		Expect(cfg.Traffic.Rate).To(Equal(0.5))
		Expect(cfg.Run.Slots).To(Equal(uint64(500)))
		Expect(cfg.Run.Driver).To(Equal("event"))

		// Untouched sections keep their defaults.
		Expect(cfg.Switch.AddrProfile).To(Equal("fixed"))
		Expect(cfg.Log.Level).To(Equal("info"))
	})

	It("should fail on a missing file", func() {
		_, err := config.Load("does/not/exist.yaml")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("rejecting invalid scenarios",
		func(mutate func(*config.Config)) {
			cfg := config.Default()
			mutate(&cfg)
			Expect(cfg.Validate()).ToNot(Succeed())
		},
		Entry("no ports", func(c *config.Config) { c.Switch.Ports = 0 }),
		Entry("negative rounds", func(c *config.Config) { c.Switch.Rounds = -1 }),
		Entry("unknown address profile", func(c *config.Config) { c.Switch.AddrProfile = "ipv6" }),
		Entry("unknown pattern", func(c *config.Config) { c.Traffic.Pattern = "bursty" }),
		Entry("rate above one", func(c *config.Config) { c.Traffic.Rate = 1.5 }),
		Entry("unknown driver", func(c *config.Config) { c.Run.Driver = "quantum" }),
		Entry("zero slots", func(c *config.Config) { c.Run.Slots = 0 }),
	)

	It("should build a logger at the configured level", func() {
		var buf bytes.Buffer
		log := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

		Expect(log.GetLevel()).To(Equal(zerolog.WarnLevel))

		log.Info().Msg("hidden")
		Expect(buf.Len()).To(Equal(0))

		log.Warn().Msg("visible")
		Expect(buf.String()).To(ContainSubstring("visible"))
	})
})
