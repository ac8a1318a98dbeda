// Polyprobe - inspect structured data through the interop protocol
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/polyglot/cbordoc"
	"github.com/chazu/polyglot/gowrap"
	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/manifest"
	"github.com/chazu/polyglot/polyglot"
	"github.com/chazu/polyglot/protomsg"
	"github.com/chazu/polyglot/vm"
)

var (
	protoFile   = flag.String("proto", "", "decode the input as a binary protobuf message described by this .proto file")
	messageName = flag.String("message", "", "fully qualified message name (with -proto)")
	exportPath  = flag.String("export", "", "write a canonical CBOR snapshot of the input to this file")
	maxDepth    = flag.Int("depth", 0, "maximum nesting depth for -export (overrides polyglot.toml)")
	stats       = flag.Bool("stats", false, "log call site cache statistics when done")
	verbose     = flag.Int("v", -1, "log verbosity (overrides polyglot.toml)")
)

var log = commonlog.GetLogger("polyglot.probe")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Polyprobe - inspect structured data through the interop protocol\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  polyprobe [options] [file]\n")
		fmt.Fprintf(os.Stderr, "  polyprobe -proto shape.proto -message geo.Shape shape.bin\n\n")
		fmt.Fprintf(os.Stderr, "The input is CBOR unless -proto is given. Without a file, stdin is read.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input string) error {
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return err
	}
	if *verbose >= 0 {
		m.Log.Verbosity = *verbose
	}
	m.ConfigureLogging()
	if m.Dir != "" {
		log.Infof("using %s", filepath.Join(m.Dir, manifest.FileName))
	}

	opts, err := polyglot.FromManifest(m)
	if err != nil {
		return err
	}
	opts = append(opts,
		polyglot.WithCollaborator(func(r *interop.Resolver) interop.Exporter { return cbordoc.NewExporter(r) }),
		polyglot.WithCollaborator(func(r *interop.Resolver) interop.Exporter { return protomsg.NewExporter(r) }),
		// Go values last: gowrap claims every remaining Go type.
		polyglot.WithCollaborator(func(r *interop.Resolver) interop.Exporter { return gowrap.NewExporter(r, nil) }),
	)
	p := polyglot.New(opts...)

	data, err := readInput(input)
	if err != nil {
		return err
	}
	root, err := decode(data)
	if err != nil {
		return err
	}

	d := &dumper{interop: p, out: os.Stdout}
	if err := d.dump(vm.Wrap(root), 0); err != nil {
		return err
	}

	if *exportPath != "" {
		depth := m.Export.MaxDepth
		if *maxDepth > 0 {
			depth = *maxDepth
		}
		snapshot, err := cbordoc.Export(root, p.Resolver(), cbordoc.Options{
			MaxDepth:        depth,
			IncludeInternal: m.Export.IncludeInternal,
		})
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(*exportPath, snapshot, 0o644); err != nil {
			return err
		}
		log.Infof("wrote %d bytes to %s", len(snapshot), *exportPath)
	}

	if *stats {
		s := p.Stats()
		log.Noticef("call sites: %d used, %d monomorphic, %d polymorphic, %d megamorphic; hit rate %.1f%%",
			s.TotalCallSites-s.Empty, s.Monomorphic, s.Polymorphic, s.Megamorphic, s.HitRate)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decode parses the input as CBOR, or as a protobuf message when -proto
// is set.
func decode(data []byte) (any, error) {
	if *protoFile == "" {
		return cbordoc.Parse(data)
	}
	if *messageName == "" {
		return nil, fmt.Errorf("-proto requires -message")
	}
	parser := protoparse.Parser{ImportPaths: []string{filepath.Dir(*protoFile)}}
	files, err := parser.ParseFiles(filepath.Base(*protoFile))
	if err != nil {
		return nil, err
	}
	md := files[0].FindMessage(*messageName)
	if md == nil {
		return nil, fmt.Errorf("message %s not found in %s", *messageName, *protoFile)
	}
	log.Debugf("decoding %s", md.GetFullyQualifiedName())
	return protomsg.Unmarshal(md, data)
}
