package ui

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fitcheck/fit"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type FileSelector struct {
	cwd      string
	fitFiles []string
	report   string
}

func CreateFileSelector() FileSelector {
	cwd, err := os.Getwd()
	if err != nil {
		err := errors.Wrap(err, "CreateFileSelector get current working directory error")
		log.Panic(err)
	}
	return FileSelector{
		cwd:      cwd,
		fitFiles: ReadFitFileNames(cwd),
	}
}

func ReadFitFileNames(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		log.Fatal(err)
	}

	fileNames := lo.FilterMap(
		entries,
		func(entry fs.DirEntry, _ int) (string, bool) {
			name := entry.Name()
			return name, !entry.IsDir() && strings.HasSuffix(name, ".fit")
		},
	)
	return fileNames
}

func (s FileSelector) View() string {
	output := "FITCHECK\n\n"
	output += "Current directory: " + s.cwd + "\n"

	if len(s.fitFiles) == 0 {
		output += "No .fit files here. Press q to quit.\n"
		return output
	}

	output += "\n"
	for i, name := range s.fitFiles {
		output += fmt.Sprintf("  [%d] %s\n", i+1, name)
	}
	output += "\nPress a number to verify a file, or q to quit.\n"
	if s.report != "" {
		output += "\n" + s.report + "\n"
	}
	return output
}

func (s FileSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := keyMsg.String()
	if key == "q" || key == "ctrl+c" {
		return s, tea.Quit
	}

	index, err := strconv.Atoi(key)
	if err != nil || index < 1 || index > len(s.fitFiles) {
		return s, nil
	}
	s.report = verifyReport(filepath.Join(s.cwd, s.fitFiles[index-1]))
	return s, nil
}

func (s FileSelector) Init() tea.Cmd {
	return nil
}

func verifyReport(path string) string {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("%s: read error: %v", filepath.Base(path), err)
	}
	result := fit.Verify(bs)
	if result.Outcome != fit.OutcomePassed {
		return fmt.Sprintf(
			"%s: FAILED (%s at offset %d)",
			filepath.Base(path), result.ErrKind, result.ErrOffset,
		)
	}
	return fmt.Sprintf(
		"%s: PASSED (%d definitions, %d data records)",
		filepath.Base(path), result.DefinitionRecords, result.DataRecords,
	)
}
