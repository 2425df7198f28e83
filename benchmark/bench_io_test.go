//nolint:testpackage // shares helpers with the other benchmark files
package benchmark

import (
	"io"
	"testing"

	cliio "github.com/dzonerzy/go-zcli/io"
)

// Category: io

func BenchmarkIO_Style(b *testing.B) {
	iom := cliio.New().ForceColor()
	theme := iom.Theme()
	b.Run("Error", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = iom.Style(theme.Error, "error:")
		}
	})
	b.Run("Bold", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = iom.Bold("Usage:")
		}
	})
	b.Run("NoColor", func(b *testing.B) {
		plain := cliio.New().NoColor()
		for i := 0; i < b.N; i++ {
			_ = plain.Style(theme.Error, "error:")
		}
	})
}

func BenchmarkLogger(b *testing.B) {
	iom := cliio.New().WithOut(io.Discard).WithErr(io.Discard).NoColor()
	log := cliio.NewLogger(iom).WithFormat(cliio.LogFormatTagged)
	b.Run("Enabled", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			log.Info("parsed %s", "zowex ping")
		}
	})
	b.Run("Filtered", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			log.Debug("bind %s = %d", "limit", i)
		}
	})
}
