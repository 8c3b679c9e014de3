// Command scan-scripts prints the script declarations found below the
// working directory as JSON, for debugging directives without generating.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alia5/scriptmeta/internal/codegen/scanner"
)

func main() {
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	tree, err := scanner.ScanTree(scanner.TreeOptions{Root: projectRoot, Include: os.Args[1:]})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to scan scripts: %v\n", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
