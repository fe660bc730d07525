package notifier

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/width"
)

const (
	KindToast = "toast"
	KindAlert = "alert"
	KindLog   = "log"

	alertTitle = "Game Info"
)

var ErrUnknownKind = errors.New("unknown notifier kind")

// Notifier shows a human-readable message to whoever is looking at the board.
type Notifier interface {
	Notify(message string)
}

// New picks the presentation of messages at startup.
func New(kind string, writer io.Writer, logger *slog.Logger) (Notifier, error) {
	switch kind {
	case KindToast:
		return NewToast(writer), nil
	case KindAlert:
		return NewAlert(writer), nil
	case KindLog:
		return NewLog(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

type toast struct {
	writer io.Writer
}

// NewToast writes every message as a single transient line.
func NewToast(writer io.Writer) Notifier {
	return &toast{writer: writer}
}

func (that *toast) Notify(message string) {
	_, _ = fmt.Fprintf(that.writer, "» %s\n", message)
}

type alert struct {
	writer io.Writer
}

// NewAlert frames every message as a titled dialog.
func NewAlert(writer io.Writer) Notifier {
	return &alert{writer: writer}
}

func (that *alert) Notify(message string) {
	columns := max(displayWidth(message), displayWidth(alertTitle))
	border := "+" + strings.Repeat("-", columns+2) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString("| " + pad(alertTitle, columns) + " |\n")
	b.WriteString(border + "\n")
	b.WriteString("| " + pad(message, columns) + " |\n")
	b.WriteString(border + "\n")

	_, _ = io.WriteString(that.writer, b.String())
}

func pad(text string, columns int) string {
	return text + strings.Repeat(" ", columns-displayWidth(text))
}

// displayWidth counts terminal columns: wide and fullwidth runes, emoji included, take two.
func displayWidth(text string) int {
	columns := 0
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			columns += 2
		default:
			columns++
		}
	}

	return columns
}

type logNotifier struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger.With("component", "notifier")}
}

func (that *logNotifier) Notify(message string) {
	that.logger.Info("notification", "message", message)
}

// Collector keeps messages so request/response transports can return them.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func NewCollector() *Collector {
	return &Collector{messages: []string{}}
}

func (that *Collector) Notify(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, message)
}

func (that *Collector) Messages() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string{}, that.messages...)
}
