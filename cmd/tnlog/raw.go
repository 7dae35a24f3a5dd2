package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tnlog/internal/lineio"
	"tnlog/internal/tracklog"
)

func newRawCommand(configPath *string) *cobra.Command {
	var device, outPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Capture the transfer verbatim, without decoding",
		Long: "Copies the recorder's output byte-for-byte into a capture file, up to\n" +
			"and including the @EOF marker. The file is valid input for `tnlog decode`,\n" +
			"which makes captures the way to test decoding without the hardware.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if device == "" {
				device = cfg.Device.Path
			}
			if device == "" {
				return fmt.Errorf("no device: pass --device or set device.path in the config")
			}
			if timeout <= 0 {
				timeout = cfg.Device.Timeout()
			}
			if outPath == "" {
				outPath = filepath.Join(cfg.Output.Dir, time.Now().Format("capture-20060102-150405.tn"))
			}

			r, err := lineio.Open(device, timeout)
			if err != nil {
				return err
			}
			defer r.Close()

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}

			log.Printf("capturing from %s (timeout %s)", device, timeout)
			if err := tracklog.Capture(r, f); err != nil {
				_ = f.Close()
				_ = os.Remove(outPath)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Printf("captured session to %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "Serial device path")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-wait read timeout")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Capture file path")
	return cmd
}
