package main

import (
	"crypto/rand"
	"fmt"

	"github.com/Giulio2002/phihash/drbg"
	"github.com/Giulio2002/phihash/hkdf"
	"github.com/Giulio2002/phihash/pbkdf2"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	hkdfCommand = &cli.Command{
		Name:   "hkdf",
		Usage:  "Derives key material with HKDF",
		Action: deriveHKDF,
		Flags:  []cli.Flag{bitsFlag, ikmFlag, saltFlag, infoFlag, lengthFlag},
	}
	pbkdf2Command = &cli.Command{
		Name:   "pbkdf2",
		Usage:  "Derives a key from a password with PBKDF2",
		Action: derivePBKDF2,
		Flags:  []cli.Flag{bitsFlag, passwordFlag, saltFlag, iterFlag, lengthFlag},
	}
	randCommand = &cli.Command{
		Name:   "rand",
		Usage:  "Prints random bytes from a Hash_DRBG seeded by the operating system",
		Action: random,
		Flags:  []cli.Flag{bitsFlag, lengthFlag, personalizationFlag},
	}
)

var (
	ikmFlag = &cli.StringFlag{
		Name:  "ikm",
		Usage: "Input keying material",
	}
	saltFlag = &cli.StringFlag{
		Name:  "salt",
		Usage: "Salt",
	}
	infoFlag = &cli.StringFlag{
		Name:  "info",
		Usage: "Context and application specific information",
	}
	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Usage:   "Password to stretch",
		EnvVars: []string{"PHIHASH_PASSWORD"},
	}
	iterFlag = &cli.IntFlag{
		Name:  "iter",
		Usage: "PBKDF2 iteration count",
		Value: 4096,
	}
	lengthFlag = &cli.IntFlag{
		Name:  "length",
		Usage: "Output length in bytes (default: digest size)",
	}
	personalizationFlag = &cli.StringFlag{
		Name:  "personalization",
		Usage: "DRBG personalization string",
	}
)

// outputLength returns --length, defaulting to the digest size.
func outputLength(ctx *cli.Context, size int) int {
	if ctx.IsSet(lengthFlag.Name) {
		return ctx.Int(lengthFlag.Name)
	}
	return size
}

func deriveHKDF(ctx *cli.Context) error {
	h, err := hashFunc(ctx)
	if err != nil {
		return err
	}
	var (
		ikm  = []byte(ctx.String(ikmFlag.Name))
		salt = []byte(ctx.String(saltFlag.Name))
		info = []byte(ctx.String(infoFlag.Name))
	)
	okm, err := hkdf.Key(h, ikm, salt, info, outputLength(ctx, h().Size()))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%x\n", okm)
	return nil
}

func derivePBKDF2(ctx *cli.Context) error {
	h, err := hashFunc(ctx)
	if err != nil {
		return err
	}
	var (
		password = []byte(ctx.String(passwordFlag.Name))
		salt     = []byte(ctx.String(saltFlag.Name))
		iter     = ctx.Int(iterFlag.Name)
	)
	logrus.WithField("iter", iter).Debug("Stretching password")
	key, err := pbkdf2.Key(h, password, salt, iter, outputLength(ctx, h().Size()))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%x\n", key)
	return nil
}

func random(ctx *cli.Context) error {
	h, err := hashFunc(ctx)
	if err != nil {
		return err
	}
	seed := make([]byte, drbg.MinEntropy+16)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("could not read entropy: %v", err)
	}
	entropy, nonce := seed[:drbg.MinEntropy], seed[drbg.MinEntropy:]
	g, err := drbg.New(h, entropy, nonce, []byte(ctx.String(personalizationFlag.Name)))
	if err != nil {
		return err
	}
	length := outputLength(ctx, h().Size())
	if length < 0 {
		return fmt.Errorf("invalid length %d", length)
	}
	out := make([]byte, length)
	if _, err := g.Read(out); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%x\n", out)
	return nil
}
