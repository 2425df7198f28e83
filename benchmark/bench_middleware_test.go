//nolint:testpackage // shares helpers with the other benchmark files
package benchmark

import (
	"io"
	"testing"

	cliio "github.com/dzonerzy/go-zcli/io"
	mw "github.com/dzonerzy/go-zcli/middleware"
	"github.com/dzonerzy/go-zcli/zcli"
)

// Category: middleware

func BenchmarkMiddlewareChain(b *testing.B) {
	iom := cliio.New().WithOut(io.Discard).WithErr(io.Discard).NoColor()
	p := zcli.New("bench", "bench", zcli.WithIO(iom))
	p.Use(mw.Chain(
		mw.Recovery(),
		mw.Logger(mw.WithOutput(io.Discard)),
		mw.Validate(mw.Custom("port", func(ctx mw.Context) error { return nil })),
	)...)
	p.RootCommand().MustCommand(zcli.NewCommand("run", "")).
		Keyword("port").Single().Default(zcli.IntValue(8080)).MustAdd().
		SetHandler(func(*zcli.Context) int { return 0 })

	args := []string{"run", "--port", "9000"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := p.ParseArgs(args); res.ExitCode != 0 {
			b.Fatalf("exit code %d", res.ExitCode)
		}
	}
}

func BenchmarkMiddlewareRecovery(b *testing.B) {
	iom := cliio.New().WithOut(io.Discard).WithErr(io.Discard).NoColor()
	p := zcli.New("bench", "bench", zcli.WithIO(iom), zcli.WithMiddleware(mw.Recovery()))
	p.RootCommand().MustCommand(zcli.NewCommand("boom", "")).
		SetHandler(func(*zcli.Context) int { panic("boom") })

	args := []string{"boom"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := p.ParseArgs(args); res.ExitCode != mw.ExitFailure {
			b.Fatalf("exit code %d", res.ExitCode)
		}
	}
}
