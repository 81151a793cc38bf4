package cli

import (
	"fmt"
	"io"

	"github.com/calendarapp/calendar-service/internal/client/session"
)

// TextRenderer prints each gate surface as a single line.
type TextRenderer struct {
	out io.Writer
}

// NewTextRenderer writes to out.
func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{out: out}
}

func (r *TextRenderer) Loading() {
	fmt.Fprintln(r.out, "Cargando...")
}

func (r *TextRenderer) Public(errorMessage string) {
	if errorMessage != "" {
		fmt.Fprintf(r.out, "No autenticado: %s\n", errorMessage)
		return
	}
	fmt.Fprintln(r.out, "No autenticado. Use 'calendarctl login' o 'calendarctl register'.")
}

func (r *TextRenderer) Protected(user session.User) {
	fmt.Fprintf(r.out, "Sesion iniciada como %s (%s)\n", user.Name, user.UID)
}
