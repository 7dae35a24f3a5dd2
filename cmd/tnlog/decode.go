package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tnlog/internal/lineio"
	"tnlog/internal/tracklog"
)

func newDecodeCommand(configPath *string) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "decode <capture-file>",
		Short: "Decode a captured session file to GPX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			// Regular files skip all serial configuration; the timeout only
			// matters for devices and is kept short here.
			r, err := lineio.Open(args[0], time.Second)
			if err != nil {
				return err
			}
			defer r.Close()

			sess, err := tracklog.Decode(r)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(cfg.Output.Dir, sess.Name()+".gpx")
			}
			if err := writeGPXFile(outPath, sess); err != nil {
				return err
			}
			log.Printf("decoded %d points from %s to %s", len(sess.Track), args[0], outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "GPX output path")
	return cmd
}
