package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/spf13/cobra"
)

var libDescription string

func newLibraryCmd() *cobra.Command {
	libCmd := &cobra.Command{
		Use:   "library",
		Short: "manage the pattern library",
	}

	addCmd := &cobra.Command{
		Use:   "add [name] [pattern]",
		Short: "store a pattern file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			g, err := pattern.Load(args[1], pattern.ParseFormat(cfg.Format))
			if err != nil {
				return err
			}
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			defer lib.Close()
			if err := lib.Put(args[0], libDescription, g); err != nil {
				return err
			}
			fmt.Printf("stored %s (%dx%d)\n", args[0], g.Rows(), g.Cols())
			return nil
		},
	}
	addCmd.Flags().StringVar(&libDescription, "desc", "", "description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			defer lib.Close()
			entries, err := lib.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("library is empty")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBOARD\tALIVE\tADDED\tDESCRIPTION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t%s\n",
					e.Name, e.Rows, e.Cols, e.Population,
					e.CreatedAt.Format("2006-01-02 15:04"), e.Description)
			}
			return w.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "print a stored pattern as ascii",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			defer lib.Close()
			g, err := lib.Get(args[0])
			if err != nil {
				return err
			}
			return pattern.Encode(os.Stdout, g, pattern.FormatASCII)
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "remove a stored pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			lib, err := openLibrary(cfg)
			if err != nil {
				return err
			}
			defer lib.Close()
			return lib.Delete(args[0])
		},
	}

	libCmd.AddCommand(addCmd, listCmd, showCmd, rmCmd)
	return libCmd
}
