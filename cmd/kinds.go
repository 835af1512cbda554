package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/kayz/questgen/internal/schema"
	"github.com/spf13/cobra"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List task kinds, or show the fields of one kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if len(args) == 0 {
				fmt.Fprintln(w, "KIND\tTITLE\tFIELDS")
				for _, name := range schema.Kinds() {
					k, _ := schema.Lookup(name)
					fmt.Fprintf(w, "%s\t%s\t%d\n", k.Name, k.Title, len(k.Fields()))
				}
				return nil
			}

			k, err := schema.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s (%s)\n", k.Name, k.Title)
			fmt.Fprintln(w, "FIELD\tTYPE\tREQUIRED\tDEFAULT")
			for _, f := range k.Required {
				fmt.Fprintf(w, "%s\t%s\tyes\t\n", f.Name, f.Type)
			}
			for _, f := range k.Optional {
				def := ""
				if f.Default != nil {
					def = fmt.Sprint(f.Default)
				}
				fmt.Fprintf(w, "%s\t%s\tno\t%s\n", f.Name, f.Type, def)
			}
			for _, m := range k.Mutex {
				fmt.Fprintf(w, "exclusive: %s / %s\n", m.A, m.B)
			}
			return nil
		},
	}
}
