package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// maxLineSize bounds a single stdio request line (1MB).
const maxLineSize = 1 << 20

// RunStdio runs the line-oriented JSON-RPC loop: one request per line, one
// response line per non-blank request line, strictly sequential. The loop
// ends cleanly on EOF or a read error; a malformed line yields a parse-error
// response and the loop continues.
func RunStdio(ctx context.Context, r io.Reader, w io.Writer, d *Dispatcher, logger *slog.Logger) error {
	logger.Info("stdio_loop_started")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	out := bufio.NewWriter(w)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		resp := d.DispatchRaw(ctx, []byte(line))

		// Encode appends exactly one newline per response.
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flush response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("stdio_read_error", "error", err)
	}
	logger.Info("stdio_loop_finished")
	return nil
}
