package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tnlog/internal/archive"
)

func newSessionsCommand(configPath *string) *cobra.Command {
	var archivePath string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List archived sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if archivePath == "" {
				archivePath = cfg.Archive.Path
			}
			if archivePath == "" {
				return fmt.Errorf("no archive: pass --archive or set archive.path in the config")
			}

			st, err := archive.Open(archivePath)
			if err != nil {
				return err
			}
			defer st.Close()

			entries, err := st.List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tRECORDED\tTAKEOFF\tPOINTS\tOUTPUT")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					e.Name,
					e.RecordedAt.Format("2006-01-02 15:04"),
					e.TakeoffLocation,
					e.Points,
					e.Path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "Archive database path")
	return cmd
}
