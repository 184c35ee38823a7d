package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/cmd/oasmodels/commands"
)

// commandNames lists every command main dispatches, for suggestions.
var commandNames = []string{"generate", "resolve", "types", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-version", "--version":
		fmt.Printf("oasmodels v%s\n", oasmodels.Version())
		if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
			fmt.Println(oasmodels.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(args)
	case "resolve":
		err = commands.HandleResolve(args)
	case "types":
		err = commands.HandleTypes(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the command closest to input, or "" when none is
// within an edit distance of 2.
func suggestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Printf(`oasmodels - OpenAPI schema to data model generator

Usage:
  oasmodels <command> [flags] [arguments]

Commands:
  generate   Run job files and write model files (default: ./jobs)
  resolve    Flatten schema compositions and print the property sets
  types      Print the target-language type of every field of a schema
  mcp        Run the MCP server over stdio
  version    Show version information (-v for build details)
  help       Show this help message

Examples:
  oasmodels generate
  oasmodels generate -o ./app jobs/petstore.yaml
  oasmodels resolve -format yaml openapi.yaml
  oasmodels types -t go openapi.yaml Pet

Run 'oasmodels <command> --help' for more information on a command.
`)
}
