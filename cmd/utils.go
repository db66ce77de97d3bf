package cmd

import (
	"fmt"
	"log"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// readSecretLine reads a line in raw terminal mode, echoing stars.
func readSecretLine(prompt string) string {
	fmt.Print(prompt)
	var value string
	buf := make([]byte, 1)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("❌ Failed to set terminal mode: %v", err)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	for {
		_, err := syscall.Read(syscall.Stdin, buf)
		if err != nil {
			log.Fatalf("❌ Failed to read input: %v", err)
		}
		char := buf[0]

		if char == 13 || char == 10 { // Enter
			fmt.Print("\r\n")
			break
		} else if char == 127 || char == 8 { // Backspace
			if len(value) > 0 {
				value = value[:len(value)-1]
				fmt.Print("\b \b")
			}
		} else if char >= 32 && char <= 126 { // Printable characters
			value += string(char)
			fmt.Print("*")
		}
	}

	return strings.TrimSpace(value)
}

func truncateText(text string, max int) string {
	if len(text) > max {
		return text[:max-3] + "..."
	}
	return text
}
