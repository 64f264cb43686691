// Command goo is a thin CLI wrapper around the goo package, exposing the
// five operations a claim-processing integration needs from a shell script
// or CI job: generating a toy legacy RSA key, generating a seed, publishing
// a commitment, signing, and verifying. Flag-based rather than
// subcommand-package based, favoring a small single-file command binary
// over a cobra/cli framework.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/hdks-crypto/goosig"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "genkey":
		err = cmdGenKey(args)
	case "genseed":
		err = cmdGenSeed(args)
	case "challenge":
		err = cmdChallenge(args)
	case "sign":
		err = cmdSign(args)
	case "verify":
		err = cmdVerify(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "goo:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: goo <command> [flags]

commands:
  genkey     generate a toy legacy RSA keypair
  genseed    generate a fresh commitment seed s'
  challenge  publish a commitment C1 over s' and a legacy modulus n
  sign       produce a signature proving knowledge of p*q = n
  verify     check a signature against a commitment and a message`)
}

func cmdGenKey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	bits := fs.Int("bits", 2048, "bit length of n = p*q")
	fs.Parse(args)

	p, q, n, err := goo.GenerateLegacyKey(*bits)
	if err != nil {
		return err
	}
	fmt.Printf("p = %s\n", p.Text(16))
	fmt.Printf("q = %s\n", q.Text(16))
	fmt.Printf("n = %s\n", n.Text(16))
	return nil
}

func cmdGenSeed(args []string) error {
	fs := flag.NewFlagSet("genseed", flag.ExitOnError)
	fs.Parse(args)

	seed, err := goo.GenerateSeed()
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(seed[:]))
	return nil
}

func cmdChallenge(args []string) error {
	fs := flag.NewFlagSet("challenge", flag.ExitOnError)
	guoNHex := fs.String("guo-n", "", "GUO modulus, hex")
	g := fs.Int64("g", 2, "GUO generator g")
	h := fs.Int64("h", 3, "GUO generator h")
	seedHex := fs.String("seed", "", "commitment seed s', hex")
	nHex := fs.String("n", "", "legacy RSA modulus, hex")
	maxLegacyBits := fs.Int("max-legacy-bits", 4096, "largest legacy modulus this party will ever sign for")
	fs.Parse(args)

	guoN, ok := new(big.Int).SetString(*guoNHex, 16)
	if !ok {
		return fmt.Errorf("bad -guo-n")
	}
	n, ok := new(big.Int).SetString(*nHex, 16)
	if !ok {
		return fmt.Errorf("bad -n")
	}
	sPrime, err := decodeSeed(*seedHex)
	if err != nil {
		return err
	}

	gg, err := goo.New(guoN, *g, *h, *maxLegacyBits)
	if err != nil {
		return err
	}
	c1, err := gg.Challenge(sPrime, n)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(c1))
	return nil
}

func cmdSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	guoNHex := fs.String("guo-n", "", "GUO modulus, hex")
	g := fs.Int64("g", 2, "GUO generator g")
	h := fs.Int64("h", 3, "GUO generator h")
	seedHex := fs.String("seed", "", "commitment seed s', hex")
	pHex := fs.String("p", "", "first prime factor, hex")
	qHex := fs.String("q", "", "second prime factor, hex")
	msgHex := fs.String("msg", "", "message to bind the signature to, hex")
	maxLegacyBits := fs.Int("max-legacy-bits", 4096, "largest legacy modulus this party will ever sign for")
	fs.Parse(args)

	guoN, ok := new(big.Int).SetString(*guoNHex, 16)
	if !ok {
		return fmt.Errorf("bad -guo-n")
	}
	p, ok := new(big.Int).SetString(*pHex, 16)
	if !ok {
		return fmt.Errorf("bad -p")
	}
	q, ok := new(big.Int).SetString(*qHex, 16)
	if !ok {
		return fmt.Errorf("bad -q")
	}
	msg, err := hex.DecodeString(*msgHex)
	if err != nil {
		return fmt.Errorf("bad -msg: %w", err)
	}
	sPrime, err := decodeSeed(*seedHex)
	if err != nil {
		return err
	}

	gg, err := goo.New(guoN, *g, *h, *maxLegacyBits)
	if err != nil {
		return err
	}
	sig, err := gg.Sign(msg, sPrime, p, q)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(sig))
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	guoNHex := fs.String("guo-n", "", "GUO modulus, hex")
	g := fs.Int64("g", 2, "GUO generator g")
	h := fs.Int64("h", 3, "GUO generator h")
	c1Hex := fs.String("c1", "", "published commitment C1, hex")
	msgHex := fs.String("msg", "", "message the signature is bound to, hex")
	sigHex := fs.String("sig", "", "signature, hex")
	maxLegacyBits := fs.Int("max-legacy-bits", 4096, "largest legacy modulus this party will ever verify")
	fs.Parse(args)

	guoN, ok := new(big.Int).SetString(*guoNHex, 16)
	if !ok {
		return fmt.Errorf("bad -guo-n")
	}
	msg, err := hex.DecodeString(*msgHex)
	if err != nil {
		return fmt.Errorf("bad -msg: %w", err)
	}
	sigBytes, err := hex.DecodeString(*sigHex)
	if err != nil {
		return fmt.Errorf("bad -sig: %w", err)
	}
	c1Bytes, err := hex.DecodeString(*c1Hex)
	if err != nil {
		return fmt.Errorf("bad -c1: %w", err)
	}

	gg, err := goo.New(guoN, *g, *h, *maxLegacyBits)
	if err != nil {
		return err
	}
	if gg.Verify(msg, sigBytes, c1Bytes) {
		fmt.Println("valid")
		return nil
	}
	fmt.Println("invalid")
	os.Exit(1)
	return nil
}

func decodeSeed(seedHex string) ([32]byte, error) {
	var seed [32]byte
	b, err := hex.DecodeString(seedHex)
	if err != nil {
		return seed, fmt.Errorf("bad -seed: %w", err)
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("bad -seed: want %d bytes, got %d", len(seed), len(b))
	}
	copy(seed[:], b)
	return seed, nil
}
