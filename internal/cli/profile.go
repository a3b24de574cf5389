package cli

import (
	"fmt"

	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/smokyabdulrahman/prayer-companion/internal/profile"
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your statistics and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := profile.Default()
			if FlagJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  %s\n", display.Bold(p.User.Name))
			fmt.Fprintf(w, "  %s\n", display.Gray(p.User.Email))
			fmt.Fprintf(w, "  %s\n\n", display.Dim("Member since "+p.User.JoinDate))

			pairs := make([][2]string, len(p.Stats))
			for i, s := range p.Stats {
				pairs[i] = [2]string{s.Label, display.Bold(s.Value)}
			}
			fmt.Fprint(w, display.KeyValue(pairs))
			fmt.Fprintln(w)

			earned, total := p.Progress()
			fmt.Fprintf(w, "  %s %s\n\n", display.Bold("Achievements"), display.Gray(fmt.Sprintf("(%d/%d)", earned, total)))
			for _, a := range p.Achievements {
				mark, title := display.Gray("○"), a.Title
				if a.Earned {
					mark, title = display.Green("●"), display.Bold(a.Title)
				}
				fmt.Fprintf(w, "  %s %s  %s\n", mark, title, display.Dim(a.Description))
			}
			fmt.Fprintln(w)
			return nil
		},
	}
}
