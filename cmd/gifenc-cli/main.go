// Command gifenc-cli drives the core encoder from a JSON animation manifest. It is a
// thin composition root: manifest parsing lives in internal/manifest, frame loading is
// a plain os.ReadFile, and the encoder does all format work. This file wires those
// pieces together and does no GIF-format logic itself.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/riverrun/gifenc"
	"github.com/riverrun/gifenc/internal/manifest"
)

var (
	manifestPath string
	outPath      string
)

func main() {
	root := &cobra.Command{
		Use:   "gifenc-cli",
		Short: "Encode and inspect manifest-driven animated GIFs.",
	}

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a manifest's frames into a GIF file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(manifestPath, outPath)
		},
	}
	encodeCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "path to the animation manifest (required)")
	encodeCmd.Flags().StringVarP(&outPath, "out", "o", "", "path to write the encoded GIF (required)")
	encodeCmd.MarkFlagRequired("manifest")
	encodeCmd.MarkFlagRequired("out")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Parse a manifest and print a summary without encoding.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(manifestPath)
		},
	}
	inspectCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "path to the animation manifest (required)")
	inspectCmd.MarkFlagRequired("manifest")

	root.AddCommand(encodeCmd, inspectCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadManifest(path string) (*manifest.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %q", path)
	}
	m, err := manifest.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %q", path)
	}
	return m, nil
}

func runInspect(manifestPath string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	fmt.Println(m.Summary())
	return nil
}

func runEncode(manifestPath, outPath string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "creating output %q", outPath)
	}
	defer out.Close()

	sink := gifenc.NewWriterSink(out)
	enc, err := gifenc.NewEncoder(sink, m.Width, m.Height, m.Palette)
	if err != nil {
		return errors.Wrap(err, "constructing encoder")
	}
	defer enc.Close()

	if err := enc.SetRepeat(m.Repeat); err != nil {
		return errors.Wrap(err, "writing repeat extension")
	}

	for _, mf := range m.Frames {
		buf, err := os.ReadFile(mf.Path)
		if err != nil {
			return errors.Wrapf(err, "reading frame %q", mf.Path)
		}
		frame := &gifenc.Frame{
			Width:       m.Width,
			Height:      m.Height,
			Delay:       mf.Delay,
			Dispose:     mf.Dispose,
			Transparent: mf.Transparent,
			Interlaced:  mf.Interlaced,
			Palette:     mf.Palette,
			Buffer:      buf,
		}
		if err := enc.WriteFrame(frame); err != nil {
			return errors.Wrapf(err, "writing frame %q", mf.Path)
		}
	}

	if _, err := enc.IntoInner(); err != nil {
		return errors.Wrap(err, "finalizing encoder")
	}
	if err := sink.Flush(); err != nil {
		return errors.Wrap(err, "flushing output")
	}
	return nil
}
