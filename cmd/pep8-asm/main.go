// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp/v3"
	"github.com/lassandro/gopep8/pkg/assembler"
	"github.com/lassandro/gopep8/pkg/encoding"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	output string

	debug     bool
	hex       bool
	strict    bool
	stopAtEnd bool
	dump      bool

	verbose bool
	quiet   bool
}

func createLogger(verbose, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func newRootCommand() *cobra.Command {
	options := optionFlags{}

	cmd := &cobra.Command{
		Use:   "pep8-asm [flags] [file]",
		Short: "Assembles Pep/8 source into a machine code image",
		Long: `pep8-asm translates a Pep/8 assembly language file into the byte
image loaded by a Pep/8 machine. Source is read from the named file, or
from standard input when it is piped and no file is given.

The image is written as raw bytes, or as a Pep/8 object file of hex pairs
terminated by "zz" when --hex is given.`,
		Version:      buildinfo.Version(version, commit, date),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return assembleFile(cmd, options, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&options.output, "out", "o", "", "name of the output file, derived from the input name if not given")
	flags.BoolVar(&options.debug, "debug", false, "write a symbol table next to the output file with extension '.pep8db'")
	flags.BoolVar(&options.hex, "hex", false, "write a Pep/8 object file of hex pairs instead of raw bytes")
	flags.BoolVar(&options.strict, "strict", false, "reject labels that are defined more than once")
	flags.BoolVar(&options.stopAtEnd, "stop-at-end", false, "ignore every line following the first .END")
	flags.BoolVar(&options.dump, "dump", false, "print the symbol table to standard error")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "log both assembler passes")
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "only log errors")

	return cmd
}

// Reads the whole source so that diagnostics can seek back to any line,
// including when the source is piped.
func readSource(cmd *cobra.Command, args []string) (*bytes.Reader, string, error) {
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil {
			return nil, "", err
		}

		if stat.IsDir() {
			return nil, "", fmt.Errorf(
				"%s is not a valid Pep/8 assembly file", filepath.Base(args[0]),
			)
		}

		source, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("reading file '%s': %w", args[0], err)
		}

		return bytes.NewReader(source), args[0], nil
	}

	if stat, _ := os.Stdin.Stat(); stat == nil || stat.Mode()&os.ModeCharDevice != 0 {
		_ = cmd.Usage()
		return nil, "", fmt.Errorf("no input file given")
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("reading standard input: %w", err)
	}

	return bytes.NewReader(source), "", nil
}

func assembleFile(cmd *cobra.Command, options optionFlags, args []string) error {
	logger := createLogger(options.verbose, options.quiet)
	color := isTerminal(os.Stderr)

	input, infile, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	outfile := outputName(infile, options.output, options.hex)

	var symtable *assembler.SymTable

	if options.debug || options.dump {
		source := ""

		if infile != "" {
			if source, err = filepath.Abs(infile); err != nil {
				logger.Warn("Resolving source path failed", log.Err(err))
				source = ""
			}
		}

		symtable = assembler.NewSymTable(source)
	}

	result, errs := assembler.AssemblePep8Source(input, &assembler.Options{
		Logger:       logger,
		StrictLabels: options.strict,
		StopAtEnd:    options.stopAtEnd,
		SymTable:     symtable,
	})

	if len(errs) > 0 {
		printErrors(os.Stderr, input, displayName(infile), errs, color)
		return fmt.Errorf("assembling failed with %d error(s)", len(errs))
	}

	if err := writeImage(outfile, result, options.hex); err != nil {
		logger.Error("Writing output file failed", log.String("file", outfile), log.Err(err))
		return err
	}

	logger.Info("Image written",
		log.String("file", outfile),
		log.Int("size", len(result)))

	if options.dump {
		printer := pp.New()
		printer.SetOutput(os.Stderr)
		printer.SetColoringEnabled(color)
		printer.Println(symtable)
	}

	if options.debug {
		filename := symtableName(outfile)

		if err := writeSymTable(filename, symtable); err != nil {
			logger.Error("Writing symbol table failed", log.String("file", filename), log.Err(err))
			return err
		}
	}

	return nil
}

func writeImage(filename string, image []byte, hex bool) error {
	if hex {
		return os.WriteFile(filename, []byte(encoding.FormatObject(image)), 0666)
	}

	return os.WriteFile(filename, image, 0666)
}

func writeSymTable(filename string, symtable *assembler.SymTable) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", filename, err)
	}

	if err := gob.NewEncoder(file).Encode(symtable); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding symbol table: %w", err)
	}

	return file.Close()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
