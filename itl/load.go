package itl

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/logger"
)

// ParseFiles parses the ITL files in order into a fresh table.
func ParseFiles(paths ...string) (*ast.Table, error) {
	table := ast.NewTable()
	parser := NewParser(table)
	for _, path := range paths {
		if err := parser.ParseFile(path); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ParseFile reads and parses one ITL file into the parser's table.
func (p *Parser) ParseFile(path string) error {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := p.ParseBytes(data); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	p.logger.Infow("parsed ITL file",
		logger.FieldFile, path,
		logger.FieldCount, p.table.Len(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return nil
}

// ParseBytes decodes one ITL document and parses it.
func (p *Parser) ParseBytes(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	return p.ParseDocument(doc)
}

// Stem returns the file name of path without directory and extension,
// e.g. "idl/basic.itl" -> "basic".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
