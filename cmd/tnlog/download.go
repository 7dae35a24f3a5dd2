package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tnlog/internal/archive"
	"tnlog/internal/gpx"
	"tnlog/internal/lineio"
	"tnlog/internal/tracklog"
)

func newDownloadCommand(configPath *string) *cobra.Command {
	var device, outDir string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the recorder's tracklog and write it as GPX",
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
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			r, err := lineio.Open(device, timeout)
			if err != nil {
				return err
			}
			defer r.Close()

			var src tracklog.LineSource = r
			var tee *captureTee
			if cfg.Capture.Enable {
				tee, err = newCaptureTee(r, cfg.Capture.Dir)
				if err != nil {
					return err
				}
				defer tee.Abort()
				src = tee
			}

			log.Printf("downloading from %s (timeout %s)", device, timeout)
			sess, err := tracklog.Decode(src)
			if err != nil {
				return err
			}
			log.Printf("session %s: %d points, takeoff %s", sess.Name(), len(sess.Track), sess.Header.TakeoffLocation)

			if tee != nil {
				capPath, err := tee.Commit(sess.Name() + ".tn")
				if err != nil {
					return err
				}
				log.Printf("raw capture saved to %s", capPath)
			}

			outPath := filepath.Join(outDir, sess.Name()+".gpx")
			if err := writeGPXFile(outPath, sess); err != nil {
				return err
			}
			log.Printf("wrote %s", outPath)

			if cfg.Archive.Enable {
				if err := recordSession(cfg.Archive.Path, sess, outPath); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "Serial device path")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-wait read timeout")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory for the GPX file")
	return cmd
}

func writeGPXFile(path string, sess *tracklog.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gpx.Write(f, sess); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func recordSession(archivePath string, sess *tracklog.Session, outPath string) error {
	st, err := archive.Open(archivePath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Put(archive.Entry{
		Name:            sess.Name(),
		SerialNumber:    sess.Header.SerialNumber,
		RecordedAt:      sess.Header.RecordedAt,
		TakeoffLocation: sess.Header.TakeoffLocation,
		Points:          len(sess.Track),
		Path:            outPath,
	})
}
