package main

import (
	"fmt"
	"os"

	"partner-funnel/internal/pkg/municipality"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		in  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "csvgen",
		Short: "Convert the IBGE municipality CSV into the JSON data file the API loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := convert(in, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d municipalities to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "data/municipalities.csv", "Source CSV (ibge_code,name,state)")
	cmd.Flags().StringVarP(&out, "out", "o", "data/municipalities.json", "Destination JSON file")

	return cmd
}

func convert(in, out string) (int, error) {
	src, err := os.Open(in)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", in, err)
	}
	defer src.Close()

	rows, err := municipality.ParseCSV(src)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}

	dst, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := municipality.WriteJSON(dst, rows); err != nil {
		dst.Close()
		return 0, err
	}
	return len(rows), dst.Close()
}
