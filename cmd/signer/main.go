// Package main provides the signer command-line tool for checking and
// re-signing cleaning reports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"slcricket/internal/formatter"
	"slcricket/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "", "Path to a cleaning report (e.g., outputs/cleaning_report.md)")
	write := flag.Bool("write", false, "Realign tables and re-sign the report in place")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: signer -input <report.md> [-write]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	contentBytes, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	content := string(contentBytes)
	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, len(content))

	meta, err := metadata.Verify(content)

	switch {
	case err == nil:
		fmt.Printf("✅ Signature valid (run %s, validated=%t, generated %s)\n",
			meta.RunID, meta.Validation, meta.Generated.Format("2006-01-02 15:04:05"))
	case errors.Is(err, metadata.ErrHashMismatch):
		fmt.Printf("⚠️  Report was edited after signing: %v\n", err)
	default:
		fmt.Printf("⚠️  %v\n", err)
	}

	if !*write {
		if err != nil {
			os.Exit(1)
		}

		return
	}

	if meta == nil {
		log.Fatalf("❌ Refusing to sign a file that was never signed: %s\n", *inputPath)
	}

	fmt.Println("✍️  Realigning tables and re-signing...")

	formatted, err := formatter.FormatMarkdown(content)
	if err != nil {
		log.Fatalf("❌ Formatting failed: %v\n", err)
	}

	if err := os.WriteFile(*inputPath, []byte(formatted), 0o644); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Signed and saved to: %s\n", *inputPath)
}
