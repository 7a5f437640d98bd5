package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// prompter reads answers from one buffered reader so that prompts and
// REPL commands never compete for stdin.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func (p *prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// text prints prompt and returns the trimmed answer.
func (p *prompter) text(prompt string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", prompt)
	line, err := p.readLine()
	return strings.TrimSpace(line), err
}

// textDefault returns current when the answer is blank.
func (p *prompter) textDefault(prompt, current string) (string, error) {
	if current == "" {
		fmt.Fprintf(p.w, "%s: ", prompt)
	} else {
		fmt.Fprintf(p.w, "%s [%s]: ", prompt, current)
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return current, nil
	}
	return line, nil
}

// multiline reads lines until an empty one.
func (p *prompter) multiline(prompt string) (string, error) {
	fmt.Fprintf(p.w, "%s (empty line to finish):\n", prompt)

	var lines []string
	for {
		line, err := p.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// multilineDefault shows current and reads replacement lines until an empty
// one. An empty first line keeps current.
func (p *prompter) multilineDefault(prompt, current string) (string, error) {
	if current == "" {
		return p.multiline(prompt)
	}

	fmt.Fprintf(p.w, "%s, currently:\n", prompt)
	for _, line := range strings.Split(current, "\n") {
		fmt.Fprintf(p.w, "  | %s\n", line)
	}
	fmt.Fprintln(p.w, "New text (empty line keeps current, - clears):")

	first, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if strings.TrimSpace(first) == "" {
		return current, nil
	}

	lines := []string{first}
	for {
		line, err := p.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// confirm is true only for an explicit y or yes.
func (p *prompter) confirm(prompt string) (bool, error) {
	ans, err := p.text(prompt + " [y/N]")
	if err != nil {
		return false, err
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes", nil
}

// password reads without echo when stdin is a terminal and falls back to a
// plain line otherwise. The caller wipes the result.
func (p *prompter) password() ([]byte, error) {
	fmt.Fprint(p.w, "Password: ")

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(p.w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
