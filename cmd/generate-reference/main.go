// Command generate-reference writes a π reference file for --check using
// Machin's formula on fixed-point integers, independently of the Chudnovsky
// code it is meant to verify.
//
//	go run ./cmd/generate-reference -digits 1000000 -o data/pi_one_mil.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/agbru/picalc/internal/logging"
)

// guardDigits absorbs the truncation error of the fixed-point series.
const guardDigits = 10

func main() {
	digits := flag.Int("digits", 20000, "Number of decimal places to generate.")
	output := flag.String("o", "-", "Output file, or - for stdout.")
	flag.Parse()

	logger := logging.NewConsoleZerolog(os.Stderr, "generate-reference")
	if *digits < 1 {
		logger.Error().Int("digits", *digits).Msg("digit count must be positive")
		os.Exit(4)
	}

	start := time.Now()
	text := piText(*digits)

	var out io.Writer = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error().Err(err).Str("path", *output).Msg("cannot create output file")
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if _, err := io.WriteString(out, text); err != nil {
		logger.Error().Err(err).Msg("write failed")
		os.Exit(1)
	}
	logger.Info().Int("digits", *digits).Dur("elapsed", time.Since(start)).Str("output", *output).Msg("reference generated")
}

// piText returns "3." followed by the first n decimals of π, truncated.
func piText(n int) string {
	s := machin(n).String()
	return s[:1] + "." + s[1:]
}

// machin returns ⌊π·10^n⌋ from π = 16·atan(1/5) − 4·atan(1/239).
func machin(n int) *big.Int {
	unity := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n+guardDigits)), nil)

	pi := new(big.Int).Mul(big.NewInt(16), arctanInv(5, unity))
	pi.Sub(pi, new(big.Int).Mul(big.NewInt(4), arctanInv(239, unity)))

	guard := new(big.Int).Exp(big.NewInt(10), big.NewInt(guardDigits), nil)
	return pi.Quo(pi, guard)
}

// arctanInv returns atan(1/x)·unity by the alternating Gregory series.
func arctanInv(x int64, unity *big.Int) *big.Int {
	x2 := big.NewInt(x * x)
	power := new(big.Int).Quo(unity, big.NewInt(x))
	sum := new(big.Int).Set(power)
	term := new(big.Int)
	for k := int64(3); power.Sign() != 0; k += 2 {
		power.Quo(power, x2)
		term.Quo(power, big.NewInt(k))
		if (k/2)%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}
	return sum
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: generate-reference [-digits N] [-o file]\n\n")
		flag.PrintDefaults()
	}
}
