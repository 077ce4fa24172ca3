package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"remontzbt.dev/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: normalize <input.json> [output.json]")
		fmt.Println("       normalize -  (read stdin, write stdout)")
		os.Exit(1)
	}

	input := os.Args[1]
	output := ""
	if len(os.Args) > 2 {
		output = os.Args[2]
	}

	if err := normalize(input, output, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// normalize reads a projects document in any accepted shape and writes it
// back in the canonical one. Data warnings go to warn.
func normalize(input, output string, stdin io.Reader, stdout, warn io.Writer) error {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	projects, err := services.DecodeProjects(input, data)
	if err != nil {
		return err
	}
	for _, issue := range services.CheckProjects(projects) {
		fmt.Fprintf(warn, "  WARNING: %s\n", issue)
	}

	out, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	out = append(out, '\n')

	if output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(warn, "Wrote %d projects to %s\n", len(projects), output)
	return nil
}
