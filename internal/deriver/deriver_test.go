package deriver_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/routetable/routegen/internal/deriver"
	"github.com/routetable/routegen/internal/patch"
	"github.com/routetable/routegen/internal/scanner"
	"github.com/routetable/routegen/internal/util"
)

func TestRuleEntry(t *testing.T) {
	cases := []struct {
		note string
		rule deriver.Rule
		src  scanner.RouteSource
		exp  patch.RouteEntry
	}{
		{
			note: "stem reference keeps the suffix",
			rule: deriver.Rule{Namespace: "app", Suffix: "-route", Reference: deriver.ReferenceStem},
			src:  scanner.RouteSource{Identifier: "login", SourcePath: "routes/login-route.yaml"},
			exp:  patch.RouteEntry{Path: "/login", Target: "app/login-route", Source: "routes/login-route.yaml"},
		},
		{
			note: "identifier reference drops the suffix",
			rule: deriver.Rule{Namespace: "app", Suffix: "-route", Reference: deriver.ReferenceIdentifier},
			src:  scanner.RouteSource{Identifier: "login", SourcePath: "routes/login-route.yaml"},
			exp:  patch.RouteEntry{Path: "/login", Target: "app/login", Source: "routes/login-route.yaml"},
		},
		{
			note: "no suffix configured",
			rule: deriver.Rule{Namespace: "gateway", Reference: deriver.ReferenceStem},
			src:  scanner.RouteSource{Identifier: "profile", SourcePath: "routes/profile.yaml"},
			exp:  patch.RouteEntry{Path: "/profile", Target: "gateway/profile", Source: "routes/profile.yaml"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			got := tc.rule.Entry(tc.src)
			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("entry: (-want,+got)\n%s", diff)
			}
		})
	}
}

func TestDeriveStrict(t *testing.T) {
	rule := deriver.Rule{Namespace: "app", Suffix: "-route", Reference: deriver.ReferenceStem}

	fsys := util.MapFS(map[string]string{
		"login-route.yaml": `apiVersion: projectcontour.io/v1
kind: HTTPProxy
metadata:
  name: login-route
  namespace: app
`,
		"logout-route.yaml": `apiVersion: projectcontour.io/v1
kind: HTTPProxy
metadata:
  name: signout-route
  namespace: app
`,
	})

	sources := map[string]scanner.RouteSource{
		"login":  {Identifier: "login", SourcePath: "routes/login-route.yaml"},
		"logout": {Identifier: "logout", SourcePath: "routes/logout-route.yaml"},
	}

	_, err := deriver.New(rule).WithManifests(fsys).WithStrict(true).Derive(sources)
	if err == nil {
		t.Fatal("expected IdentifierMismatchError")
	}
	var mismatch *deriver.IdentifierMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected IdentifierMismatchError, got %T: %v", err, err)
	}
	exp := `route source "routes/logout-route.yaml" declares name "signout-route" but its filename derives "logout-route"`
	if err.Error() != exp {
		t.Fatalf("Got: %v\nExpected: %v", err, exp)
	}

	// Without strict mode the mismatch is only a warning.
	entries, err := deriver.New(rule).WithManifests(fsys).Derive(sources)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestDeriveWithoutManifests(t *testing.T) {
	// No manifest fs wired: derivation is a pure mapping, nothing is read.
	entries, err := deriver.New(deriver.Rule{Namespace: "app", Suffix: "-route", Reference: deriver.ReferenceStem}).
		Derive(map[string]scanner.RouteSource{
			"login": {Identifier: "login", SourcePath: "routes/login-route.yaml"},
		})
	if err != nil {
		t.Fatal(err)
	}

	exp := []patch.RouteEntry{{Path: "/login", Target: "app/login-route", Source: "routes/login-route.yaml"}}
	if diff := cmp.Diff(exp, entries); diff != "" {
		t.Errorf("entries: (-want,+got)\n%s", diff)
	}
}
