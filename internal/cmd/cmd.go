package cmd

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/routetable/routegen/internal/assembler"
	"github.com/routetable/routegen/internal/config"
	"github.com/routetable/routegen/internal/deriver"
	"github.com/routetable/routegen/internal/scanner"
)

// RootCommand is the base CLI command that all subcommands attach to.
var RootCommand = &cobra.Command{
	Use:           "routegen",
	Short:         "Generate route table patches from satellite route manifests",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Exit codes, distinct so calling automation can tell non-retryable input
// conflicts apart from environment problems.
const (
	ExitOK       = 0
	ExitConfig   = 1
	ExitConflict = 2
	ExitIO       = 3
)

// ExitCode maps an error from a command run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		dup      *scanner.DuplicateIdentifierError
		coll     *assembler.PathCollisionError
		mismatch *deriver.IdentifierMismatchError
		conf     *config.Error
		pathErr  *fs.PathError
	)
	switch {
	case errors.As(err, &dup), errors.As(err, &coll), errors.As(err, &mismatch):
		return ExitConflict
	case errors.As(err, &conf):
		return ExitConfig
	case errors.As(err, &pathErr), errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIO
	}
	return ExitConfig
}
