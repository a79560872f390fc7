// fidlwire inspects captured FIDL messages.
//
// It reads a single message from a file (or stdin, given "-"), decodes its
// header and reports what it finds: the transaction id and method ordinal of a
// transaction message, the status of an epitaph, whether the header's wire
// format is one this codec understands, and a BLAKE3 digest identifying the
// capture. Files ending in ".zst" or ".lz4" are decompressed first.
//
// Usage:
//
//	fidlwire [--kind transaction|persistent] [--hex] [--output text|json|cbor] <file>
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/stewi1014/fidl/conformance"
	"github.com/stewi1014/fidl/gram"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	kind      string
	hex       bool
	output    string
	logFormat string
	verbose   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	flagSet := pflag.NewFlagSet("fidlwire", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.kind, "kind", "transaction", "message kind: transaction or persistent")
	flagSet.BoolVar(&opts.hex, "hex", false, "input is a hex dump; whitespace and # comments are ignored")
	flagSet.StringVarP(&opts.output, "output", "o", "text", "report format: text, json or cbor")
	flagSet.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fidlwire [flags] <file>\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		flagSet.Usage()
		return exitUsage
	}

	logger, err := newLogger(stderr, opts.logFormat, opts.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return exitUsage
	}
	switch opts.kind {
	case "transaction", "persistent":
	default:
		logger.Error("unknown message kind", "kind", opts.kind)
		return exitUsage
	}
	switch opts.output {
	case "text", "json", "cbor":
	default:
		logger.Error("unknown output format", "output", opts.output)
		return exitUsage
	}

	path := flagSet.Arg(0)
	message, err := readInput(path, stdin, opts.hex)
	if err != nil {
		logger.Error("reading message failed", "file", path, "error", err)
		return exitError
	}
	logger.Debug("read message", "file", path, "bytes", len(message))

	rep, err := inspect(message, opts.kind)
	if err != nil {
		logger.Error("decoding message failed", "file", path, "error", err)
		return exitError
	}
	rep.File = path
	if !rep.Compatible {
		logger.Warn("message uses an unrecognised wire format", "magic", rep.Magic)
	}

	if err := writeReport(stdout, opts.output, rep); err != nil {
		logger.Error("writing report failed", "error", err)
		return exitError
	}
	return exitOK
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOptions := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOptions)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOptions)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// readInput reads the message at path, "-" being stdin.
func readInput(path string, stdin io.Reader, isHex bool) ([]byte, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch filepath.Ext(path) {
	case ".zst":
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer decoder.Close()
		r = decoder
	case ".lz4":
		r = lz4.NewReader(r)
	}

	message, err := gram.ReadMessage(r)
	if err != nil {
		return nil, err
	}
	if isHex {
		return conformance.Vector{Name: path, Hex: string(message)}.Bytes()
	}
	return message, nil
}

type report struct {
	File       string `json:"file"`
	Digest     string `json:"digest"`
	Size       int    `json:"size"`
	Kind       string `json:"kind"`
	Magic      uint8  `json:"magic"`
	Compatible bool   `json:"compatible"`
	Flags      string `json:"flags"`
	BodySize   int    `json:"body_size"`

	Transaction *transactionReport `json:"transaction,omitempty"`
}

type transactionReport struct {
	TxID    uint32 `json:"tx_id"`
	Ordinal uint64 `json:"ordinal"`
	Epitaph bool   `json:"epitaph"`
	Status  *int32 `json:"status,omitempty"`
}

func digest(message []byte) string {
	sum := blake3.Sum256(message)
	return "blake3:" + hex.EncodeToString(sum[:])
}

func inspect(message []byte, kind string) (*report, error) {
	rep := &report{
		Digest: digest(message),
		Size:   len(message),
		Kind:   kind,
	}

	if kind == "persistent" {
		header, body, err := gram.SplitPersistent(message)
		if err != nil {
			return nil, err
		}
		rep.Magic = header.MagicNumber
		rep.Compatible = header.IsCompatible()
		rep.Flags = header.HeaderFlags().String()
		rep.BodySize = len(body)
		return rep, nil
	}

	header, body, err := gram.DecodeTransactionHeader(message)
	if err != nil {
		return nil, err
	}
	rep.Magic = header.MagicNumber
	rep.Compatible = header.IsCompatible()
	rep.Flags = header.HeaderFlags().String()
	rep.BodySize = len(body)
	rep.Transaction = &transactionReport{
		TxID:    header.TxID,
		Ordinal: header.Ordinal,
		Epitaph: header.IsEpitaph(),
	}

	if header.IsEpitaph() {
		var epitaph gram.EpitaphBody
		if err := gram.DecodeInto(header, body, nil, &epitaph); err != nil {
			return nil, fmt.Errorf("epitaph: %w", err)
		}
		status := int32(epitaph.Error)
		rep.Transaction.Status = &status
	}
	return rep, nil
}

var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("fidlwire: CBOR encoder initialization failed: " + err.Error())
	}
}

func writeReport(w io.Writer, format string, rep *report) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rep)
	case "cbor":
		b, err := cborMode.Marshal(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "file:       %v\n", rep.File)
	fmt.Fprintf(&sb, "digest:     %v\n", rep.Digest)
	fmt.Fprintf(&sb, "size:       %v\n", rep.Size)
	fmt.Fprintf(&sb, "kind:       %v\n", rep.Kind)
	fmt.Fprintf(&sb, "magic:      %v\n", rep.Magic)
	fmt.Fprintf(&sb, "compatible: %v\n", rep.Compatible)
	fmt.Fprintf(&sb, "flags:      %v\n", rep.Flags)
	fmt.Fprintf(&sb, "body size:  %v\n", rep.BodySize)
	if tx := rep.Transaction; tx != nil {
		fmt.Fprintf(&sb, "tx id:      %v\n", tx.TxID)
		fmt.Fprintf(&sb, "ordinal:    %#x\n", tx.Ordinal)
		fmt.Fprintf(&sb, "epitaph:    %v\n", tx.Epitaph)
		if tx.Status != nil {
			fmt.Fprintf(&sb, "status:     %v\n", *tx.Status)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
