package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

// LoadErrorKind classifies why a taxonomy could not be loaded.
type LoadErrorKind string

const (
	KindMissing    LoadErrorKind = "missing"
	KindUnreadable LoadErrorKind = "unreadable"
	KindMalformed  LoadErrorKind = "malformed"
)

// LoadError reports a taxonomy file that is absent or does not have the
// grade → subject → category → [standard] shape.
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case KindMissing:
		return fmt.Sprintf("standards file %s not found", e.Path)
	case KindMalformed:
		return fmt.Sprintf("standards file %s is malformed: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("read standards file %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// shapeSchema describes the accepted file layout. Only the root must be
// non-empty; an empty branch just leaves its selector without options.
var shapeSchema = map[string]any{
	"type":          "object",
	"minProperties": 1,
	"additionalProperties": map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func shape() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://achievement-standards.json"
		if err := c.AddResource(url, shapeSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// Load reads and validates the taxonomy file at path.
// All failures are returned as *LoadError.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := KindUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindMissing
		}
		return nil, &LoadError{Path: path, Kind: kind, Err: err}
	}

	t, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: KindMalformed, Err: err}
	}
	return t, nil
}

// Parse validates raw JSON against the taxonomy shape and builds the tree,
// preserving key order.
func Parse(data []byte) (*Taxonomy, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := shape()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var errs []string
	var grades []Grade

	root := gjson.ParseBytes(data)
	seenGrades := map[string]bool{}
	root.ForEach(func(gk, gv gjson.Result) bool {
		grade := Grade{Name: gk.String()}
		errs = checkDup(errs, seenGrades, grade.Name, "grade")

		seenSubjects := map[string]bool{}
		gv.ForEach(func(sk, sv gjson.Result) bool {
			subject := Subject{Name: sk.String()}
			errs = checkDup(errs, seenSubjects, subject.Name, "subject in "+grade.Name)

			seenCats := map[string]bool{}
			sv.ForEach(func(ck, cv gjson.Result) bool {
				cat := Category{Name: ck.String()}
				errs = checkDup(errs, seenCats, cat.Name, "category in "+grade.Name+"/"+subject.Name)
				for _, std := range cv.Array() {
					cat.Standards = append(cat.Standards, std.String())
				}
				subject.Categories = append(subject.Categories, cat)
				return true
			})

			grade.Subjects = append(grade.Subjects, subject)
			return true
		})

		grades = append(grades, grade)
		return true
	})

	if len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "; "))
	}
	return New(grades), nil
}

func checkDup(errs []string, seen map[string]bool, name, what string) []string {
	if strings.TrimSpace(name) == "" {
		return append(errs, fmt.Sprintf("empty %s name", what))
	}
	if seen[name] {
		return append(errs, fmt.Sprintf("duplicate %s %q", what, name))
	}
	seen[name] = true
	return errs
}
