package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/finplan/internal/domain"
)

// nowFunc stamps report filenames.
var nowFunc = time.Now

// Write renders report with the named formatter and writes it to w.
func Write(w io.Writer, report *domain.PlanReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.PlanReport, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("finplan_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ExtensionFor(f.Name())))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateReport writes the named format, or every CSV export for "all", into dir
// and returns the files created.
func GenerateReport(report *domain.PlanReport, format, dir string) ([]string, error) {
	var formatters []Formatter
	if NormalizeFormatName(format) == "all" {
		for _, f := range builtInFormatters {
			if ExtensionFor(f.Name()) == "csv" {
				formatters = append(formatters, f)
			}
		}
	} else if f := GetFormatterByName(format); f != nil {
		formatters = append(formatters, f)
	} else {
		return nil, unsupported(format)
	}

	files := make([]string, 0, len(formatters))
	for _, f := range formatters {
		name, err := WriteFormatted(f, report, dir)
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// ExtensionFor returns the file extension used for a formatter name.
func ExtensionFor(name string) string {
	n := NormalizeFormatName(name)
	switch {
	case strings.HasSuffix(n, "csv"):
		return "csv"
	case n == "json", n == "yaml":
		return n
	default:
		return "txt"
	}
}

func unsupported(format string) error {
	// enrich error with available formatters and aliases
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
