package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitpack"
)

func main() {
	var (
		spec        = flag.String("spec", "", "Layout spec, e.g. 'flags:u8, ok:bool, id:u16'")
		values      = flag.String("values", "", "Comma-separated field values (group/array members use ';')")
		offset      = flag.Int("offset", 0, "Bit offset of the first field")
		size        = flag.Int("size", 0, "Buffer size in bytes (default: smallest that fits)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		bitpack.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*spec, *offset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *spec == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitpack -spec '<layout>' [-values '<values>'] [-offset N] [-size N]")
		fmt.Fprintln(os.Stderr, "       bitpack -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "Layout types: bool, u8..u128, s8..s128, T[N] arrays, (T, T, ...) groups")
		os.Exit(1)
	}

	if err := run(*spec, *values, *offset, *size); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(specStr, valuesStr string, offset, size int) error {
	fields, err := parseSpec(specStr)
	if err != nil {
		return fmt.Errorf("parse spec: %w", err)
	}

	members := make([]bitpack.Any, len(fields))
	for i, f := range fields {
		members[i] = f.codec
	}
	group := bitpack.Group(members...)

	bitpack.Logger().Debug("parsed spec",
		zap.Int("fields", len(fields)),
		zap.Int("width", group.Width()),
		zap.Int("offset", offset))

	// Layout table.
	fmt.Printf("Layout: %s\n", group)
	fmt.Printf("Total width: %d bits at bit offset %d\n\n", group.Width(), offset)
	fmt.Printf("%-4s %-12s %-14s %6s %8s\n", "#", "NAME", "TYPE", "WIDTH", "BIT OFF")
	for i, f := range fields {
		fmt.Printf("%-4d %-12s %-14s %6d %8d\n",
			i, f.name, f.codec.String(), f.codec.Width(), offset+group.Offset(i))
	}

	if valuesStr == "" {
		return nil
	}

	// Pack.
	vals, err := splitTop(valuesStr, ',')
	if err != nil {
		return fmt.Errorf("parse values: %w", err)
	}
	if len(vals) != len(fields) {
		return fmt.Errorf("want %d values, got %d", len(fields), len(vals))
	}
	vs := make([]any, len(vals))
	for i, raw := range vals {
		v, err := parseValue(fields[i].codec, raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", fields[i].name, err)
		}
		vs[i] = v
	}

	bufBytes := (offset + group.Width() + 7) / 8
	if size > 0 {
		if size*8 < offset+group.Width() {
			return fmt.Errorf("buffer of %d bytes cannot hold %d bits at offset %d", size, group.Width(), offset)
		}
		bufBytes = size
	}
	buf := make([]byte, bufBytes)
	group.Pack(vs, buf, offset)

	fmt.Printf("\nPacked (%d bytes):\n", len(buf))
	fmt.Printf("  hex: % x\n", buf)
	fmt.Printf("  bin: %s\n", wrapBinary(buf, termWidth()))

	// Unpack back for confirmation.
	out := group.Unpack(buf, offset)
	fmt.Println("\nUnpacked:")
	for i, f := range fields {
		fmt.Printf("  %-12s = %s\n", f.name, formatValue(out[i]))
	}

	return nil
}

// wrapBinary renders buf as space-separated binary octets, wrapped to the
// given display width.
func wrapBinary(buf []byte, width int) string {
	perLine := (width - 8) / 9
	if perLine < 1 {
		perLine = 8
	}

	var b strings.Builder
	for i, octet := range buf {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteString("\n       ")
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "%08b", octet)
	}
	return b.String()
}

func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
