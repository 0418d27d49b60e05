// Package builtin registers the deterministic fix rules shipped with
// remedy. Import for registration side effects.
//
// Rules target the recurring breakages seen after framework upgrades
// where the fix is a known one-line import substitution. Anything that
// needs real code context is left to tier 2.
package builtin

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/patch"
	"github.com/remedykit/remedy-cli/internal/rule"
)

// singleQuoted extracts the first single-quoted substring of a message.
var singleQuoted = regexp.MustCompile(`'([^']+)'`)

// importRenames maps deprecated module specifiers to their canonical
// old and new import lines. Only imports with one canonical form can
// be rewritten without reading the file.
var importRenames = map[string]struct{ old, new string }{
	"@angular/http": {
		old: "import { HttpModule } from '@angular/http';",
		new: "import { HttpClientModule } from '@angular/common/http';",
	},
	"rxjs/Observable": {
		old: "import { Observable } from 'rxjs/Observable';",
		new: "import { Observable } from 'rxjs';",
	},
	"rxjs/Subject": {
		old: "import { Subject } from 'rxjs/Subject';",
		new: "import { Subject } from 'rxjs';",
	},
}

// replaceLine builds a single-hunk patch swapping one line at the
// diagnostic's position.
func replaceLine(d diag.Diagnostic, oldLine, newLine, desc string, src patch.Source) *patch.Patch {
	diff := fmt.Sprintf("@@ -%d,1 +%d,1 @@\n-%s\n+%s\n", d.Line, d.Line, oldLine, newLine)
	return &patch.Patch{
		Diff:        diff,
		Description: desc,
		FilePath:    d.File,
		Source:      src,
	}
}

// insertAtTop builds a pure-insert patch adding one line before the
// first line of the file.
func insertAtTop(d diag.Diagnostic, line, desc string) *patch.Patch {
	diff := fmt.Sprintf("@@ -1,0 +1,1 @@\n+%s\n", line)
	return &patch.Patch{
		Diff:        diff,
		Description: desc,
		FilePath:    d.File,
		Source:      patch.SourcePattern,
	}
}

func init() {
	reg := rule.Global()

	// Order matters: more specific rules first. The first rule whose
	// predicate matches a cluster's representative wins.

	reg.MustRegister(&rule.Rule{
		ID:          "http-module-migration",
		Name:        "HttpModule migration",
		Description: "Replaces the removed @angular/http HttpModule import with HttpClientModule from @angular/common/http.",
		Match: func(d diag.Diagnostic) bool {
			return strings.Contains(d.Message, "no exported member") &&
				strings.Contains(d.Message, "HttpModule")
		},
		Generate: func(d diag.Diagnostic) *patch.Patch {
			r := importRenames["@angular/http"]
			return replaceLine(d, r.old, r.new,
				"Replace HttpModule import with HttpClientModule", patch.SourcePattern)
		},
	})

	reg.MustRegister(&rule.Rule{
		ID:          "deprecated-module-path",
		Name:        "Deprecated module path",
		Description: "Rewrites imports of module specifiers that moved between major versions.",
		Match: func(d diag.Diagnostic) bool {
			return strings.Contains(d.Message, "Cannot find module")
		},
		Generate: func(d diag.Diagnostic) *patch.Patch {
			m := singleQuoted.FindStringSubmatch(d.Message)
			if m == nil {
				return nil
			}
			r, ok := importRenames[m[1]]
			if !ok {
				// Unknown specifier: not enough context to fix safely.
				return nil
			}
			return replaceLine(d, r.old, r.new,
				fmt.Sprintf("Rewrite import of moved module %s", m[1]), patch.SourcePattern)
		},
	})

	reg.MustRegister(&rule.Rule{
		ID:          "rxjs-pipeable-operators",
		Name:        "RxJS pipeable operators",
		Description: "Adds the rxjs/operators import when prototype-patched Observable operators are gone after the rxjs 6 upgrade.",
		Match: func(d diag.Diagnostic) bool {
			return strings.Contains(d.Message, "does not exist on type 'Observable")
		},
		Generate: func(d diag.Diagnostic) *patch.Patch {
			return insertAtTop(d, "import { map, filter, tap } from 'rxjs/operators';",
				"Add pipeable operator import for rxjs 6")
		},
	})
}
