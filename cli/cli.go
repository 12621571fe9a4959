// Package cli implements the interactive search REPL, grounded on the
// source system's cli module (command_cli).
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mooss/heurisko/searcher"
)

// Run starts the "Search: " prompt loop against idx, printing one line
// per result until the user types "exit".
func Run(idx *searcher.Index, contextSize int) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Print("Search: ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		fmt.Println()
		if input == "exit" {
			return
		}

		results := idx.Search(input, contextSize, 0, true, 2, 5, 50)
		for _, result := range results {
			printResult(result)
		}
	}
}

func printResult(result searcher.QueryResult) {
	var start, end float64
	for _, w := range result.Words {
		if w.Start != nil {
			start = *w.Start
			break
		}
	}
	for i := len(result.Words) - 1; i >= 0; i-- {
		if result.Words[i].End != nil {
			end = *result.Words[i].End
			break
		}
	}

	tokens := make([]string, len(result.Words))
	for i, w := range result.Words {
		tokens[i] = w.Word
	}

	fmt.Printf("[%s: %v..%v] %s\n", result.Transcript, start, end, strings.Join(tokens, " "))
}
