// Command phihash computes phihash digests, MACs and derived keys from the
// command line.
package main

import (
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/Giulio2002/phihash"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	bitsFlag = &cli.IntFlag{
		Name:    "bits",
		Usage:   "Digest width, 256 or 512",
		Value:   256,
		EnvVars: []string{"PHIHASH_BITS"},
	}
	verbosityFlag = &cli.StringFlag{
		Name:    "verbosity",
		Usage:   "Log level (panic, fatal, error, warn, info, debug, trace)",
		Value:   "info",
		EnvVars: []string{"PHIHASH_VERBOSITY"},
	}
)

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "phihash",
		Usage:     "widening-multiply hash toolkit",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{verbosityFlag},
		Before:    setupLogging,
		Commands: []*cli.Command{
			sumCommand,
			hmacCommand,
			hkdfCommand,
			pbkdf2Command,
			randCommand,
		},
	}
}

func setupLogging(ctx *cli.Context) error {
	level, err := logrus.ParseLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		return err
	}
	logrus.SetOutput(ctx.App.ErrWriter)
	logrus.SetLevel(level)
	return nil
}

// hashFunc maps the --bits flag to a hash constructor.
func hashFunc(ctx *cli.Context) (func() hash.Hash, error) {
	switch bits := ctx.Int(bitsFlag.Name); bits {
	case 256:
		return phihash.New256, nil
	case 512:
		return phihash.New512, nil
	default:
		return nil, fmt.Errorf("unsupported digest width %d", bits)
	}
}

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
