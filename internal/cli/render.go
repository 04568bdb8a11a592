package cli

import (
	"fmt"
	"io"
	"strings"
)

const cellWidth = 11

// writeBoard draws the board with one column per category and one row per
// value. Answered cells are blanked.
func writeBoard(w io.Writer, labels []string, values []int, answered func(col, row int) bool) {
	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", len(labels))

	fmt.Fprintln(w, border)
	fmt.Fprint(w, "|")
	for _, l := range labels {
		fmt.Fprintf(w, "%s|", center(l, cellWidth))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, border)

	for row, v := range values {
		fmt.Fprint(w, "|")
		for col := range labels {
			text := fmt.Sprintf("$%d", v)
			if answered(col, row) {
				text = ""
			}
			fmt.Fprintf(w, "%s|", center(text, cellWidth))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, border)
}

// writeScores lists players in turn order, marking whose turn it is
func writeScores(w io.Writer, names []string, scores []int, current int) {
	for i, name := range names {
		marker := "  "
		if i == current {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%s: %d\n", marker, name, scores[i])
	}
}

func writeQuestion(w io.Writer, category string, value int, prompt string, choices []string) {
	fmt.Fprintf(w, "%s for $%d\n", category, value)
	fmt.Fprintln(w, prompt)
	for i, c := range choices {
		fmt.Fprintf(w, "  %d) %s\n", i+1, c)
	}
}

func writeResolution(w io.Writer, player string, delta int, timedOut bool, answer string) {
	switch {
	case timedOut:
		fmt.Fprintf(w, "Time's up, %s! The answer was %s.\n", player, answer)
	case delta > 0:
		fmt.Fprintf(w, "Correct, %s! +$%d\n", player, delta)
	default:
		fmt.Fprintf(w, "Sorry %s, the answer was %s.\n", player, answer)
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
