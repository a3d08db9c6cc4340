package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"fitcheck/fit"
	"fitcheck/ui"
	"github.com/alexflint/go-arg"
)

type (
	Args struct {
		Verify      *VerifyCmd      `arg:"subcommand:verify"`
		Print       *PrintCmd       `arg:"subcommand:print"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive"`
	}
	VerifyCmd struct {
		File string `arg:"positional,required" help:"path to the fit file" placeholder:"activity.fit"`
	}
	PrintCmd struct {
		File string `arg:"positional,required" help:"path to the fit file" placeholder:"activity.fit"`
		To   string `help:"write the JSON output to a file instead of stdout" placeholder:"records.json"`
	}
	InteractiveCmd struct{}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Structural and checksum verification for FIT activity files.\n",
			"Decodes every record of a file against its embedded definitions and",
			"checks the declared sizes and the trailing checksum in one pass.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func StartVerifying(path string) int {
	bs, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read fit file: %v\n", err)
		return 1
	}

	result := fit.Verify(bs)
	if result.Outcome != fit.OutcomePassed {
		fmt.Fprintf(
			os.Stderr,
			"verification failed (%s at offset %d): %v\n",
			result.ErrKind, result.ErrOffset, result.Err,
		)
		return 1
	}

	fmt.Printf(
		"verification passed: %d definition records, %d data records, %d bytes, checksum 0x%04X\n",
		result.DefinitionRecords, result.DataRecords, result.BytesConsumed, result.ComputedChecksum,
	)
	return 0
}

func StartPrinting(path string, to string) int {
	bs, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read fit file: %v\n", err)
		return 1
	}

	file, err := fit.ToStructuredFile(bs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode fit file: %v\n", err)
		return 1
	}

	lhms := fit.ToOrderedMaps(*file)
	outputBytes, err := json.MarshalIndent(lhms, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render records: %v\n", err)
		return 1
	}

	if to == "" {
		fmt.Println(string(outputBytes))
		return 0
	}
	if err := os.WriteFile(to, outputBytes, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output to %s: %v\n", to, err)
		return 1
	}
	fmt.Println("Done printing. Please check your result file at: " + to)
	return 0
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	switch {
	case args.Verify != nil:
		os.Exit(StartVerifying(args.Verify.File))
	case args.Print != nil:
		os.Exit(StartPrinting(args.Print.File, args.Print.To))
	case args.Interactive != nil:
		ui.Start()
	default:
		parser.WriteHelp(os.Stdout)
	}
}
