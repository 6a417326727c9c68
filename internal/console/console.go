package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 50

// Console prints the operator-facing text of a launcher run. Messages are
// written synchronously, in call order.
type Console struct {
	out       io.Writer
	holder    Holder
	title     string
	serverURL string

	titleStyle lipgloss.Style
	faultStyle lipgloss.Style
	color      bool
}

func NewConsole(out io.Writer, holder Holder, title string, serverURL string, color bool) *Console {
	if holder == nil {
		holder = NoHold{}
	}
	renderer := lipgloss.NewRenderer(out)
	return &Console{
		out:        out,
		holder:     holder,
		title:      title,
		serverURL:  serverURL,
		titleStyle: renderer.NewStyle().Bold(true),
		faultStyle: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		color:      color,
	}
}

func (console *Console) Banner() {
	rule := strings.Repeat("=", bannerWidth)
	console.println(rule)
	console.println(console.style(console.titleStyle, console.title))
	console.println(rule)
}

func (console *Console) Installing() {
	console.println("Installing requirements...")
}

func (console *Console) Starting() {
	console.println("Starting server...")
}

func (console *Console) Instructions() {
	console.println("Open your browser and go to: " + console.serverURL)
	console.println("Press CTRL+C to stop the server")
}

// Fault prints err verbatim.
func (console *Console) Fault(err error) {
	console.println(console.style(console.faultStyle, "error: "+err.Error()))
}

// Hold blocks until the operator acknowledges the final output.
func (console *Console) Hold() error {
	return console.holder.Hold()
}

func (console *Console) style(style lipgloss.Style, text string) string {
	if !console.color {
		return text
	}
	return style.Render(text)
}

func (console *Console) println(text string) {
	fmt.Fprintln(console.out, text)
}
