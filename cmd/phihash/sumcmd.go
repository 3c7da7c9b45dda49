package main

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"time"

	"github.com/Giulio2002/phihash"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	sumCommand = &cli.Command{
		Name:      "sum",
		Usage:     "Prints the digest of files, or of stdin when none are given",
		ArgsUsage: "[file ...]",
		Action:    sum,
		Flags:     []cli.Flag{bitsFlag},
	}
	hmacCommand = &cli.Command{
		Name:      "hmac",
		Usage:     "Prints the HMAC of files, or of stdin when none are given",
		ArgsUsage: "[file ...]",
		Action:    mac,
		Flags:     []cli.Flag{bitsFlag, keyFlag},
	}
)

var keyFlag = &cli.StringFlag{
	Name:    "key",
	Usage:   "MAC key",
	EnvVars: []string{"PHIHASH_KEY"},
}

func sum(ctx *cli.Context) error {
	h, err := hashFunc(ctx)
	if err != nil {
		return err
	}
	return digestInputs(ctx, h)
}

func mac(ctx *cli.Context) error {
	if !ctx.IsSet(keyFlag.Name) {
		return errors.New("need --key")
	}
	key := []byte(ctx.String(keyFlag.Name))
	var newMAC func() hash.Hash
	switch bits := ctx.Int(bitsFlag.Name); bits {
	case 256:
		newMAC = func() hash.Hash { return phihash.NewMAC256(key) }
	case 512:
		newMAC = func() hash.Hash { return phihash.NewMAC512(key) }
	default:
		return fmt.Errorf("unsupported digest width %d", bits)
	}
	return digestInputs(ctx, newMAC)
}

// digestInputs streams every file argument, or stdin, through a fresh hash
// and prints one "<hex>  <name>" line per input.
func digestInputs(ctx *cli.Context, newHash func() hash.Hash) error {
	if ctx.NArg() == 0 {
		return digestOne(ctx, newHash(), ctx.App.Reader, "-")
	}
	for _, name := range ctx.Args().Slice() {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = digestOne(ctx, newHash(), f, name)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func digestOne(ctx *cli.Context, h hash.Hash, r io.Reader, name string) error {
	start := time.Now()
	n, err := io.Copy(h, r)
	if err != nil {
		return fmt.Errorf("could not read %s: %v", name, err)
	}
	logrus.WithFields(logrus.Fields{
		"input":   name,
		"bytes":   n,
		"elapsed": time.Since(start),
	}).Debug("Digested input")
	fmt.Fprintf(ctx.App.Writer, "%x  %s\n", h.Sum(nil), name)
	return nil
}
