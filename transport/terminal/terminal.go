package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	commandRestart = "r"
	commandQuit    = "q"

	prompt = "Pick a box (1-9), r to restart, q to quit: "

	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
	colorReset = "\033[0m"
)

type screen interface {
	Tap(ctx context.Context, index int) (*entity.Game, error)
	Restart(ctx context.Context) (*entity.Game, error)
}

// Terminal draws one board on a text terminal and reads boxes from the keyboard.
type Terminal struct {
	logger  *slog.Logger
	in      io.Reader
	out     io.Writer
	colored bool
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Terminal {
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Terminal{
		logger:  logger.With("component", "terminal"),
		in:      in,
		out:     out,
		colored: colored,
	}
}

// Run plays until the player quits, the input ends or ctx is cancelled.
func (that *Terminal) Run(ctx context.Context, screen screen, game *entity.Game) error {
	done := make(chan struct{})
	defer close(done)

	lines, readErr := that.readLines(done)

	for {
		that.render(game)
		that.printf("%s", prompt)

		var (
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			that.printf("\n")
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			that.printf("\n")
			return nil
		}

		if ctx.Err() != nil {
			return nil
		}

		next, quit, err := that.dispatch(ctx, screen, strings.TrimSpace(line))
		if err != nil {
			return err
		}

		if quit {
			return nil
		}

		if next != nil {
			game = next
		}
	}
}

// readLines scans the input on its own goroutine until it ends or done is closed.
// lines is closed when the input ends, after the scan error is sent on the returned error channel.
func (that *Terminal) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Terminal) dispatch(ctx context.Context, screen screen, command string) (*entity.Game, bool, error) {
	switch strings.ToLower(command) {
	case commandQuit:
		return nil, true, nil
	case commandRestart:
		game, err := screen.Restart(ctx)
		if err != nil {
			return nil, false, err
		}

		return game, false, nil
	case "":
		return nil, false, nil
	}

	box, err := strconv.Atoi(command)
	if err != nil {
		that.printf("Unknown command %q\n", command)
		return nil, false, nil
	}

	game, err := screen.Tap(ctx, box-1)
	if err != nil {
		// rejections have already been shown by the notifier
		if _, ok := usecase.RejectionMessage(err); ok {
			that.logger.Debug("move rejected", "box", box, "error", err)
			return game, false, nil
		}

		return nil, false, err
	}

	return game, false, nil
}

func (that *Terminal) render(game *entity.Game) {
	var b strings.Builder

	b.WriteString("\n " + usecase.StatusLine(game) + "\n\n")

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			cells[col] = that.cell(game, index)
		}

		b.WriteString("  " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			b.WriteString(" ---+---+---\n")
		}
	}

	b.WriteString("\n")

	that.printf("%s", b.String())
}

func (that *Terminal) cell(game *entity.Game, index int) string {
	mark := game.Board[index]
	if mark == entity.EmptyCell {
		return strconv.Itoa(index + 1)
	}

	if !that.colored {
		return string(mark)
	}

	color := colorRed
	if mark == entity.PlayerO {
		color = colorBlue
	}

	return color + string(mark) + colorReset
}

func (that *Terminal) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
