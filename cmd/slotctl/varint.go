package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/joshuapare/slotkit/varint"
	"github.com/spf13/cobra"
)

var varintSigned bool

func init() {
	cmd := &cobra.Command{
		Use:   "varint",
		Short: "Encode and decode prefix varints",
	}
	cmd.PersistentFlags().BoolVar(&varintSigned, "signed", false, "Use the zigzag signed form")
	cmd.AddCommand(newVarintEncodeCmd(), newVarintDecodeCmd())
	rootCmd.AddCommand(cmd)
}

func newVarintEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <value>...",
		Short: "Encode integers to hex varints",
		Long: `Encode one or more integers and print each encoding as hex.

Example:
  slotctl varint encode 456
  slotctl varint encode --signed -- -3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				var enc []byte
				if varintSigned {
					v, err := strconv.ParseInt(arg, 0, 64)
					if err != nil {
						return fmt.Errorf("varint encode: %w", err)
					}
					enc = varint.AppendInt(nil, v)
				} else {
					v, err := strconv.ParseUint(arg, 0, 64)
					if err != nil {
						return fmt.Errorf("varint encode: %w", err)
					}
					enc = varint.Append(nil, v)
				}
				printInfo("%s\t%x\n", arg, enc)
			}
			return nil
		},
	}
}

func newVarintDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode hex varints to integers",
		Long: `Decode one or more hex-encoded varints. Each argument may hold a
sequence of varints; all of them are printed.

Example:
  slotctl varint decode 81c8
  slotctl varint decode ffffffffffffffffff`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				b, err := hex.DecodeString(arg)
				if err != nil {
					return fmt.Errorf("varint decode: %w", err)
				}
				for len(b) > 0 {
					if varintSigned {
						v, n := varint.Int(b)
						if n == 0 {
							return fmt.Errorf("varint decode: truncated input %q", arg)
						}
						printInfo("%d\n", v)
						b = b[n:]
					} else {
						v, n := varint.Uint(b)
						if n == 0 {
							return fmt.Errorf("varint decode: truncated input %q", arg)
						}
						printInfo("%d\n", v)
						b = b[n:]
					}
				}
			}
			return nil
		},
	}
}
