// Command ecmap encodes field elements to curve points on registered curves.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/hashfree/go-ecmap/pkg/registry"
)

var logger = hclog.New(&hclog.LoggerOptions{
	Name:  "ecmap",
	Level: hclog.Info,
})

var (
	tablePath string

	curveName string
	inputU    string
	signS     int
	inputU2   string
	signS2    int
	uniform   bool
)

func newRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if err := registry.AddBuiltins(reg); err != nil {
		return nil, err
	}
	if tablePath != "" {
		if err := reg.LoadFile(tablePath); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	return reg, nil
}

func parseElement(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("cannot parse field element %q", raw)
	}
	return v, nil
}

func runCurves(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		fmt.Println(name)
	}
	return nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	enc, err := reg.Lookup(curveName)
	if err != nil {
		return err
	}
	u, err := parseElement(inputU)
	if err != nil {
		return err
	}

	if !uniform {
		logger.Debug("encoding", "curve", curveName, "u", u.String(), "s", signS)
		p, err := enc.K6(u, signS)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	}

	u2, err := parseElement(inputU2)
	if err != nil {
		return err
	}
	logger.Debug("encoding near-uniform", "curve", curveName,
		"u1", u.String(), "s1", signS, "u2", u2.String(), "s2", signS2)
	p, err := enc.K5(u, signS, u2, signS2)
	if err != nil {
		return err
	}
	fmt.Println(p)
	return nil
}

func main() {
	root := &cobra.Command{
		Use:           "ecmap",
		Short:         "Deterministic field-element to curve-point encodings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&tablePath, "table", "",
		"YAML curve table to load in addition to the built-in curves")

	curves := &cobra.Command{
		Use:   "curves",
		Short: "List registered curve names",
		RunE:  runCurves,
	}

	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode a field element to a curve point",
		Long: "Encode a field element to a high-order curve point, or, with\n" +
			"--uniform, combine two encodings into a near-uniform point (which\n" +
			"may fall in a small subgroup).",
		RunE: runEncode,
	}
	encode.Flags().StringVar(&curveName, "curve", "p256", "registered curve name")
	encode.Flags().StringVar(&inputU, "u", "", "field element to encode (decimal or 0x-hex)")
	encode.Flags().IntVar(&signS, "s", 0, "sign bit (0 or 1)")
	encode.Flags().BoolVar(&uniform, "uniform", false, "use the near-uniform two-input combinator")
	encode.Flags().StringVar(&inputU2, "u2", "", "second field element (with --uniform)")
	encode.Flags().IntVar(&signS2, "s2", 0, "second sign bit (with --uniform)")
	_ = encode.MarkFlagRequired("u")

	root.AddCommand(curves, encode)

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
