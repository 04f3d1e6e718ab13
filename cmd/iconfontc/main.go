// Command iconfontc compiles an icon manifest into an icon-font bundle.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/iconfont"
)

func main() {
	var (
		manifest = flag.String("manifest", "icons.xml", "manifest file")
		outDir   = flag.String("out", ".", "output directory")
		formats  = flag.String("formats", "", "comma-separated formats (empty compiles everything)")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		iconfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	requested, err := parseFormats(*formats)
	if err != nil {
		log.Fatalf("%v", err)
	}

	text, err := os.ReadFile(*manifest)
	if err != nil {
		log.Fatalf("Failed to read manifest: %v", err)
	}

	res, err := iconfont.CompileManifest(string(text), *manifest, requested)
	if err != nil {
		log.Fatalf("Compile failed: %v", err)
	}

	written, err := writeArtifacts(*outDir, res)
	if err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Compiled %d icons into %s (%s)\n",
		len(res.Icons), *outDir, strings.Join(written, ", "))
}

func parseFormats(csv string) ([]iconfont.Format, error) {
	if csv == "" {
		return nil, nil
	}
	var formats []iconfont.Format
	for _, name := range strings.Split(csv, ",") {
		f, err := iconfont.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// writeArtifacts stores every produced artifact under dir, named after the
// compile's output base name, and returns the written filenames.
func writeArtifacts(dir string, res *iconfont.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	base := res.FileName
	if base == "" {
		base = "iconfont"
	}
	// The stylesheet's svg source URL points at the font container, so it
	// takes the plain .svg name; the symbol sprite gets its own suffix.
	files := []struct {
		name string
		data []byte
	}{
		{base + ".svg", res.SVGFont},
		{base + ".ttf", res.TTF},
		{base + ".eot", res.EOT},
		{base + ".woff", res.WOFF},
		{base + ".woff2", res.WOFF2},
		{base + ".css", []byte(res.CSS)},
		{base + ".html", []byte(res.HTML)},
		{base + ".symbol.svg", []byte(res.Sprite)},
		{base + ".js", []byte(res.JS)},
	}

	var written []string
	for _, f := range files {
		if len(f.data) == 0 {
			continue
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, f.name)
	}
	return written, nil
}
