package logbook

import (
	"fmt"
	"strings"

	"github.com/glamus/glamus-utils/util"
)

// Entry is one key/value pair of a browser log dump.
type Entry struct {
	Key   string
	Value any
}

// LogBrowserResult writes a separator line and then "[key] => [value]" for
// each entry, in order, with key and value JSON-encoded.
func (l *Logger) LogBrowserResult(entries []Entry) error {
	if l.browserResult == "" {
		return ErrNoStream
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] - new log entry\n", util.TimestampForLog())
	for _, e := range entries {
		key, err := util.Encode(e.Key)
		if err != nil {
			return err
		}
		value, err := util.Encode(e.Value)
		if err != nil {
			return fmt.Errorf("browser log entry %s: %w", e.Key, err)
		}
		fmt.Fprintf(&b, "[%s] => [%s]\n", key, value)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.appendTo(l.browserResult, b.String()); err != nil {
		return err
	}
	l.echo.block(b.String())
	return nil
}

// LogPartyResultHeading starts the results of one test run for a party.
// The heading names the kind of run: manipulated runs set every second
// answer to agree, tuned runs take precedence over weighted ones.
func (l *Logger) LogPartyResultHeading(party string, weighted, tuned, manipulated bool) error {
	if l.partyResult == "" {
		return ErrNoStream
	}

	text := fmt.Sprintf("\n\n[%s] - [new log entry] - ", util.TimestampForLog())
	if manipulated {
		text += "manipulated, "
	}
	if tuned {
		text += " tuned "
	} else if weighted {
		text += " WEIGHTED "
	}
	text += "test for party [" + party + "] run"

	return l.writeParty(text)
}

// LogPartyResult writes the actual and the expected rating of a party.
func (l *Logger) LogPartyResult(party, result, expected string) error {
	if l.partyResult == "" {
		return ErrNoStream
	}
	text := fmt.Sprintf("\n[%s] - [%s]  - result: [%s] - [%s %%] expected",
		util.TimestampForLog(), party, result, expected)
	return l.writeParty(text)
}

func (l *Logger) writeParty(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.appendTo(l.partyResult, text); err != nil {
		return err
	}
	l.echo.block(text)
	return nil
}
