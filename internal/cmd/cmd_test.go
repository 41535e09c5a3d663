package cmd_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/routetable/routegen/internal/assembler"
	"github.com/routetable/routegen/internal/cmd"
	"github.com/routetable/routegen/internal/config"
	"github.com/routetable/routegen/internal/deriver"
	"github.com/routetable/routegen/internal/scanner"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		note string
		err  error
		exp  int
	}{
		{
			note: "no error",
			err:  nil,
			exp:  cmd.ExitOK,
		},
		{
			note: "duplicate identifier is a conflict",
			err:  &scanner.DuplicateIdentifierError{Identifier: "login", Path: "routes/login-route.yml", Other: "routes/login-route.yaml"},
			exp:  cmd.ExitConflict,
		},
		{
			note: "path collision is a conflict",
			err:  &assembler.PathCollisionError{Path: "/login", Sources: [2]string{"routes/login-route.yaml", "base entry 0 (/login)"}},
			exp:  cmd.ExitConflict,
		},
		{
			note: "identifier mismatch is a conflict",
			err:  &deriver.IdentifierMismatchError{Path: "routes/logout-route.yaml", Declared: "signout-route", Derived: "logout-route"},
			exp:  cmd.ExitConflict,
		},
		{
			note: "wrapped conflict keeps its code",
			err:  fmt.Errorf("generate: %w", &deriver.IdentifierMismatchError{Path: "routes/logout-route.yaml", Declared: "signout-route", Derived: "logout-route"}),
			exp:  cmd.ExitConflict,
		},
		{
			note: "config error",
			err:  config.ErrMissingOutput,
			exp:  cmd.ExitConfig,
		},
		{
			note: "wrapped path error is an I/O failure",
			err:  fmt.Errorf("failed to read route source directory: %w", &fs.PathError{Op: "open", Path: "routes", Err: fs.ErrNotExist}),
			exp:  cmd.ExitIO,
		},
		{
			note: "bare not-exist is an I/O failure",
			err:  fmt.Errorf("read: %w", fs.ErrNotExist),
			exp:  cmd.ExitIO,
		},
		{
			note: "permission denied is an I/O failure",
			err:  fmt.Errorf("write: %w", fs.ErrPermission),
			exp:  cmd.ExitIO,
		},
		{
			note: "untyped error defaults to the config code",
			err:  errors.New("something else"),
			exp:  cmd.ExitConfig,
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			if got := cmd.ExitCode(tc.err); got != tc.exp {
				t.Fatalf("exit code for %v: got %d, expected %d", tc.err, got, tc.exp)
			}
		})
	}
}

func TestRoutesCommandLogFlags(t *testing.T) {
	for _, c := range cmd.RootCommand.Commands() {
		if c.Name() != "routes" {
			continue
		}
		for _, flag := range []string{"log-level", "log-format"} {
			if c.Flags().Lookup(flag) == nil {
				t.Fatalf("routes command is missing the --%s flag", flag)
			}
		}
		return
	}
	t.Fatal("routes command not registered")
}
