package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rm-hull/image-effects/effects"
)

func ListEffects(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, effect := range effects.All {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", effect, effect.Label()); err != nil {
			return err
		}
	}
	return tw.Flush()
}
