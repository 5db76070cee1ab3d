package commands

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/itl2py/errors"
)

// PrintError reports err with any hints attached along the way.
func PrintError(w io.Writer, err error) {
	prefix := "Error"
	switch {
	case errors.IsConfigError(err):
		prefix = "Configuration error"
	case errors.IsSchemaError(err):
		prefix = "ITL error"
	}
	pterm.Error.WithWriter(w).WithPrefix(pterm.Prefix{Text: prefix, Style: pterm.Error.Prefix.Style}).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.WithWriter(w).Println(hint)
	}
}
