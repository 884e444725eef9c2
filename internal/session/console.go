package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ChamsBouzaiene/couch/internal/conversation"
)

// Input supplies user utterances one line at a time. ReadUtterance blocks
// until a line is available and returns io.EOF when input is exhausted.
type Input interface {
	ReadUtterance(ctx context.Context) (string, error)
}

// Output shows the assistant's reply to the user.
type Output interface {
	Display(text string) error
}

// UserPrompt is printed before each line of user input.
const UserPrompt = "* You: "

// MaxUtteranceBytes bounds a single line of input.
const MaxUtteranceBytes = 1 << 20

// ConsoleInput reads utterances from a line-oriented reader such as stdin.
type ConsoleInput struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewConsoleInput reads lines from r, writing UserPrompt to prompt before
// each read. prompt may be nil.
func NewConsoleInput(r io.Reader, prompt io.Writer) *ConsoleInput {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxUtteranceBytes)
	return &ConsoleInput{
		scanner: scanner,
		prompt:  prompt,
	}
}

// ReadUtterance returns the next non-blank line. Blank lines are skipped and
// the prompt is shown again.
func (c *ConsoleInput) ReadUtterance(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if c.prompt != nil {
			fmt.Fprint(c.prompt, UserPrompt)
		}
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", io.EOF
		}
		line := c.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, nil
	}
}

// ConsoleOutput prints replies as "> reply".
type ConsoleOutput struct {
	w io.Writer
}

// NewConsoleOutput writes replies to w.
func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

// Display implements Output.
func (c *ConsoleOutput) Display(text string) error {
	_, err := fmt.Fprintf(c.w, "> %s\n", text)
	return err
}

// MemoryHook prints the current summary and transcript after each summary
// refresh, before the reply is displayed.
type MemoryHook struct {
	NopHook
	W io.Writer
}

func (h MemoryHook) OnSummarized(_ context.Context, st *conversation.State, _ string) {
	fmt.Fprint(h.W, RenderMemory(st))
}

// RenderMemory formats the summary and transcript block shown by MemoryHook.
func RenderMemory(st *conversation.State) string {
	var b strings.Builder
	b.WriteString("\nCurrent Conversation Summary:\n")
	b.WriteString(st.Summary)
	b.WriteString("\n\nCurrent Conversation History:\n")
	for _, line := range st.Transcript.Render() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
