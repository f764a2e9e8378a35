// Command gedgest converts an OCR-transcribed NGSQ narrative report into a
// GEDCOM file without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "gedgest",
		Short:        "Convert NGSQ narrative report transcriptions to GEDCOM",
		SilenceUsage: true,
	}
	root.AddCommand(newConvertCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
