package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/theapemachine/errnie"

	algoqft "github.com/cwbudde/algo-qft"
	"github.com/cwbudde/algo-qft/gpu"
)

const (
	modeRoundTrip = "roundtrip"
	modeMatrix    = "matrix"
	modeReference = "reference"
)

type checkResult struct {
	span    int
	mode    string
	maxErr  float64
	passes  int
	elapsed time.Duration
	err     error
}

func main() {
	var (
		spanList  = flag.String("spans", "1-16", "spans to check: comma-separated values or ranges like 1-16")
		mode      = flag.String("mode", "all", "check mode: roundtrip, matrix, reference, all")
		row       = flag.Int("row", 0, "row offset of the gate block")
		extra     = flag.Int("extra", 0, "qubits above the block")
		precision = flag.String("precision", "complex128", "amplitude precision: complex64 or complex128")
		tol       = flag.Float64("tol", algoqft.DefaultTolerance, "max accepted amplitude error")
		workers   = flag.Int("workers", 0, "mock device workers (0 = GOMAXPROCS)")
		list      = flag.Bool("list", false, "list the gate descriptors and exit")
		lint      = flag.Bool("lint", false, "validate the WGSL kernel sources and exit")
		seed      = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()

	if *list {
		listGates()
		return
	}

	if *lint {
		if bad := lintShaders(); bad > 0 {
			os.Exit(1)
		}
		return
	}

	spans, err := parseSpans(*spanList)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	if len(spans) == 0 {
		fmt.Println("no spans specified")
		os.Exit(2)
	}

	modes, err := resolveModes(*mode)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	opts := algoqft.DefaultOptions()
	opts.Tolerance = *tol
	if *workers > 0 {
		opts.Backend = gpu.NewMockBackendWithWorkers(*workers)
	} else {
		opts.Backend = gpu.NewMockBackend()
	}

	switch *precision {
	case "complex64":
		opts.Precision = gpu.PrecisionComplex64
	case "complex128":
		opts.Precision = gpu.PrecisionComplex128
	default:
		fmt.Printf("unknown precision %q\n", *precision)
		os.Exit(2)
	}

	rnd := rand.New(rand.NewSource(*seed))

	errnie.Info("qftcheck: spans=%v mode=%s row=%d extra=%d precision=%s", spans, *mode, *row, *extra, opts.Precision)

	fmt.Printf("%6s  %10s  %12s  %8s  %10s  %s\n", "span", "mode", "max error", "passes", "time", "status")

	failed := 0

	for _, span := range spans {
		for _, runMode := range modes {
			if runMode == modeMatrix && span >= algoqft.MatrixSpanLimit {
				continue
			}

			res := runCheck(rnd, span, *row, *extra, runMode, opts)

			status := "ok"
			switch {
			case errors.Is(res.err, algoqft.ErrToleranceExceeded):
				status = "FAIL"
				failed++
			case res.err != nil:
				status = "error: " + res.err.Error()
				failed++
			}

			fmt.Printf("%6d  %10s  %12.3e  %8d  %10s  %s\n", span, runMode, res.maxErr, res.passes, res.elapsed.Round(time.Microsecond), status)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d check(s) failed\n", failed)
		os.Exit(1)
	}
}

func runCheck(rnd *rand.Rand, span, row, extra int, mode string, opts algoqft.Options) checkResult {
	res := checkResult{span: span, mode: mode}

	sim, err := algoqft.NewSimulator(row+span+extra, opts)
	if err != nil {
		res.err = err
		return res
	}
	defer func() { _ = sim.Close() }()

	start := time.Now()

	if mode == modeRoundTrip {
		res.maxErr, res.err = algoqft.CheckRoundTrip(sim, span, row, rnd)
	} else {
		for _, dir := range []algoqft.Direction{algoqft.Forward, algoqft.Inverse} {
			var (
				maxErr float64
				err    error
			)
			if mode == modeMatrix {
				gate, _ := algoqft.DefaultFourierGates().Family(dir).OfSpan(span)
				maxErr, err = algoqft.CheckActsLikeMatrix(sim, gate, row, gate.Matrix(), rnd)
			} else {
				maxErr, err = algoqft.CheckAgainstReference(sim, span, row, dir, rnd)
			}

			res.maxErr = max(res.maxErr, maxErr)
			if err != nil {
				res.err = fmt.Errorf("%s: %w", dir, err)
				break
			}
		}
	}

	res.elapsed = time.Since(start)
	res.passes = sim.Passes()

	return res
}

func listGates() {
	fmt.Printf("%-8s  %-7s  %6s  %6s  %s\n", "id", "symbol", "height", "matrix", "name")

	for _, g := range algoqft.DefaultFourierGates().All() {
		fmt.Printf("%-8s  %-7s  %6d  %6t  %s\n", g.SerializedID(), g.Symbol(), g.Height(), g.HasMatrix(), g.Name())
	}
}

// lintShaders compiles every builtin kernel on a WebGPU validation context
// and returns how many were rejected.
func lintShaders() int {
	ctx, err := (&gpu.WebGPUBackend{}).NewContext(0)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	defer func() { _ = ctx.Close() }()

	bad := 0
	for _, name := range gpu.BuiltinKernelNames() {
		k, _ := gpu.BuiltinKernel(name)

		status := "ok"
		if _, err := ctx.Compile(k); !errors.Is(err, gpu.ErrNotImplemented) {
			status = fmt.Sprintf("FAIL: %v", err)
			bad++
		}

		fmt.Printf("%-26s  %s\n", name, status)
	}

	return bad
}

func resolveModes(mode string) ([]string, error) {
	switch mode {
	case "all":
		return []string{modeRoundTrip, modeMatrix, modeReference}, nil
	case modeRoundTrip, modeMatrix, modeReference:
		return []string{mode}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// parseSpans reads a list like "1-4,7,9-10". Every listed span must lie in
// [MinSpan, MaxSpan].
func parseSpans(list string) ([]int, error) {
	parts := strings.Split(list, ",")

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		loText, hiText, isRange := strings.Cut(part, "-")

		lo, err := strconv.Atoi(strings.TrimSpace(loText))
		if err != nil {
			return nil, fmt.Errorf("bad span %q", part)
		}

		hi := lo
		if isRange {
			if hi, err = strconv.Atoi(strings.TrimSpace(hiText)); err != nil {
				return nil, fmt.Errorf("bad span range %q", part)
			}
		}

		if lo > hi || lo < algoqft.MinSpan || hi > algoqft.MaxSpan {
			return nil, fmt.Errorf("span range %q outside [%d, %d]", part, algoqft.MinSpan, algoqft.MaxSpan)
		}

		for span := lo; span <= hi; span++ {
			out = append(out, span)
		}
	}

	return out, nil
}
