package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// promptIn is the interactive input stream. One shared reader keeps input
// buffered across consecutive prompts; tests substitute it.
var promptIn = bufio.NewReader(os.Stdin)

// promptConfirm prompts the user for a yes/no confirmation. Anything but
// an explicit yes declines.
func promptConfirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	response, err := promptIn.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// promptSelect prompts for a numeric choice between 1 and max. A blank
// line, a non-number, or a number out of range declines.
func promptSelect(prompt string, max int) (int, bool) {
	fmt.Printf("%s: ", prompt)
	response, err := promptIn.ReadString('\n')
	if err != nil {
		return 0, false
	}
	choice, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil || choice < 1 || choice > max {
		return 0, false
	}
	return choice, true
}
