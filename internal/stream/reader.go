// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

// Package stream consumes the chat response event stream: it
// demultiplexes server-sent frames into tagged events and runs the
// decrypt coordinator that normalizes encrypted frames before they reach
// the application layer.
package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cipherchat/cipherchat/models"
)

const framePrefix = "data: "

// maxFrameSize bounds a single frame; an encrypted_done aggregate with
// full grounding metadata stays well under this.
const maxFrameSize = 1 << 20

// FrameReader splits a server-sent event stream into discrete frames.
// Each frame is one line of the form "data: {json}"; blank lines are
// frame separators.
type FrameReader struct {
	scanner *bufio.Scanner
}

// NewFrameReader wraps r in a FrameReader.
func NewFrameReader(r io.Reader) *FrameReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	return &FrameReader{scanner: scanner}
}

// Next returns the next frame. io.EOF signals a cleanly closed
// transport; any other failure, including a malformed frame, is wrapped
// in ErrStreamAborted.
func (f *FrameReader) Next() (models.StreamEvent, error) {
	for f.scanner.Scan() {
		line := strings.TrimSpace(f.scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, framePrefix) {
			return models.StreamEvent{}, fmt.Errorf("%w: malformed frame %q", ErrStreamAborted, truncateForLog(line))
		}

		var event models.StreamEvent
		if err := json.Unmarshal([]byte(line[len(framePrefix):]), &event); err != nil {
			return models.StreamEvent{}, fmt.Errorf("%w: decode frame: %v", ErrStreamAborted, err)
		}
		return event, nil
	}

	if err := f.scanner.Err(); err != nil {
		return models.StreamEvent{}, fmt.Errorf("%w: read frame: %v", ErrStreamAborted, err)
	}
	return models.StreamEvent{}, io.EOF
}

func truncateForLog(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
