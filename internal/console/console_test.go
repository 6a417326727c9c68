package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"equipmenttracker.dev/launcher/internal/console"
	"github.com/stretchr/testify/assert"
)

type countingHold struct {
	holds int
}

func (hold *countingHold) Hold() error {
	hold.holds++
	return nil
}

func TestPreLaunchOrder(t *testing.T) {
	out := &bytes.Buffer{}
	instance := console.NewConsole(out, nil, "Equipment Tracker", "http://localhost:5000", false)

	instance.Banner()
	instance.Installing()
	instance.Starting()
	instance.Instructions()

	assert.Equal(t, strings.Join([]string{
		strings.Repeat("=", 50),
		"Equipment Tracker",
		strings.Repeat("=", 50),
		"Installing requirements...",
		"Starting server...",
		"Open your browser and go to: http://localhost:5000",
		"Press CTRL+C to stop the server",
		"",
	}, "\n"), out.String())
}

func TestFaultIsVerbatim(t *testing.T) {
	out := &bytes.Buffer{}
	instance := console.NewConsole(out, nil, "Equipment Tracker", "http://localhost:5000", false)

	instance.Fault(errors.New(`exec: "python": executable file not found in $PATH`))

	assert.Equal(t, "error: exec: \"python\": executable file not found in $PATH\n", out.String())
}

func TestColorOutputKeepsText(t *testing.T) {
	out := &bytes.Buffer{}
	instance := console.NewConsole(out, nil, "Equipment Tracker", "http://localhost:5000", true)

	instance.Banner()
	instance.Fault(errors.New("boom"))

	assert.Contains(t, out.String(), "Equipment Tracker")
	assert.Contains(t, out.String(), "error: boom")
}

func TestHoldDelegates(t *testing.T) {
	hold := &countingHold{}
	instance := console.NewConsole(&bytes.Buffer{}, hold, "Equipment Tracker", "http://localhost:5000", false)

	assert.NoError(t, instance.Hold())
	assert.Equal(t, 1, hold.holds)
}

func TestKeypressHoldReadsLine(t *testing.T) {
	out := &bytes.Buffer{}
	hold := console.NewKeypressHold(strings.NewReader("\nleftover"), out)

	assert.NoError(t, hold.Hold())
	assert.Equal(t, "Press any key to continue . . . \n", out.String())
}

func TestKeypressHoldEndOfInput(t *testing.T) {
	hold := &console.KeypressHold{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	assert.NoError(t, hold.Hold())
}

func TestNoHold(t *testing.T) {
	assert.NoError(t, console.NoHold{}.Hold())
}
