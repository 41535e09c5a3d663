package scanner_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/routetable/routegen/internal/scanner"
	"github.com/routetable/routegen/internal/util"
)

func TestScan(t *testing.T) {
	cases := []struct {
		note       string
		files      map[string]string
		suffix     string
		extensions []string
		exp        map[string]scanner.RouteSource
		expError   string
	}{
		{
			note: "matching files only",
			files: map[string]string{
				"login-route.yaml":  "",
				"logout-route.yaml": "",
				"README.md":         "unrelated content",
				"kustomization.yaml": `resources:
- login-route.yaml`,
			},
			suffix:     "-route",
			extensions: []string{".yaml"},
			exp: map[string]scanner.RouteSource{
				"login":  {Identifier: "login", SourcePath: "routes/login-route.yaml"},
				"logout": {Identifier: "logout", SourcePath: "routes/logout-route.yaml"},
			},
		},
		{
			note:       "empty directory is valid",
			files:      map[string]string{},
			suffix:     "-route",
			extensions: []string{".yaml"},
			exp:        map[string]scanner.RouteSource{},
		},
		{
			note: "directory with only unrelated files is valid",
			files: map[string]string{
				"notes.txt": "",
			},
			suffix:     "-route",
			extensions: []string{".yaml"},
			exp:        map[string]scanner.RouteSource{},
		},
		{
			note: "subdirectories are not scanned",
			files: map[string]string{
				"login-route.yaml":        "",
				"nested/stale-route.yaml": "",
			},
			suffix:     "-route",
			extensions: []string{".yaml"},
			exp: map[string]scanner.RouteSource{
				"login": {Identifier: "login", SourcePath: "routes/login-route.yaml"},
			},
		},
		{
			note: "multiple extensions",
			files: map[string]string{
				"login-route.yaml":  "",
				"logout-route.yml":  "",
				"profile-route.txt": "",
			},
			suffix:     "-route",
			extensions: []string{".yaml", ".yml"},
			exp: map[string]scanner.RouteSource{
				"login":  {Identifier: "login", SourcePath: "routes/login-route.yaml"},
				"logout": {Identifier: "logout", SourcePath: "routes/logout-route.yml"},
			},
		},
		{
			note: "duplicate identifier across extensions",
			files: map[string]string{
				"login-route.yaml": "",
				"login-route.yml":  "",
			},
			suffix:     "-route",
			extensions: []string{".yaml", ".yml"},
			expError:   `route sources "routes/login-route.yaml" and "routes/login-route.yml" derive the same identifier "login"`,
		},
		{
			note: "empty identifier",
			files: map[string]string{
				"-route.yaml": "",
			},
			suffix:     "-route",
			extensions: []string{".yaml"},
			expError:   `route source "routes/-route.yaml" derives an empty identifier`,
		},
		{
			note: "suffix-free convention",
			files: map[string]string{
				"login.yaml":  "",
				"logout.yaml": "",
			},
			extensions: []string{".yaml"},
			exp: map[string]scanner.RouteSource{
				"login":  {Identifier: "login", SourcePath: "routes/login.yaml"},
				"logout": {Identifier: "logout", SourcePath: "routes/logout.yaml"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			sources, err := scanner.New(util.MapFS(tc.files)).
				WithDir("routes").
				WithSuffix(tc.suffix).
				WithExtensions(tc.extensions).
				Scan()

			if tc.expError != "" {
				if err == nil {
					t.Fatalf("expected error %q, got sources %v", tc.expError, sources)
				}
				if err.Error() != tc.expError {
					t.Fatalf("Got: %v\nExpected: %v", err, tc.expError)
				}
				var dup *scanner.DuplicateIdentifierError
				if !errors.As(err, &dup) {
					t.Fatalf("expected DuplicateIdentifierError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.exp, sources); diff != "" {
				t.Errorf("sources: (-want,+got)\n%s", diff)
			}
		})
	}
}
