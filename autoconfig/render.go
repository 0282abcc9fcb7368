package autoconfig

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/glamus/glamus-utils/util"
)

// Fields are the values of one config document.
type Fields struct {
	ElectionPath         string
	ServerResultFile     string
	ModuleDefinitionPath string
	ServerID             string
	BaseURL              string
	ServerTitle          string
	Platform             string
	PlatformVersion      string
	BrowserName          string
	BrowserVersion       string
	PartyID              int
	PartyName            string
	TestStatements       bool
	DevelopmentMode      bool

	// Optional nested structures, embedded only when non-empty. Objects
	// (map[string]any) and lists ([]any) are both accepted.
	CookieQuestion any
	Iframe         any
	Banner         any
	Banner2        any
}

type scalar struct {
	key, value string
}

type nestedField struct {
	key   string
	value any
}

// empty reports whether a nested value is left out of the document: nil, or
// a map, slice or array without elements.
func empty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func (f Fields) scalars() []scalar {
	return []scalar{
		{"electionPath", f.ElectionPath},
		{"serverResultFile", f.ServerResultFile},
		{"moduleDefinitionPath", f.ModuleDefinitionPath},
		{"serverID", f.ServerID},
		{"baseurl", f.BaseURL},
		{"serverTitle", f.ServerTitle},
		{"platform", f.Platform},
		{"platformVersion", f.PlatformVersion},
		{"browserName", f.BrowserName},
		{"browserVersion", f.BrowserVersion},
		{"partyID", strconv.Itoa(f.PartyID)},
		{"partyName", f.PartyName},
		{"testStatements", strconv.FormatBool(f.TestStatements)},
		{"developmentMode", strconv.FormatBool(f.DevelopmentMode)},
	}
}

func (f Fields) nested() []nestedField {
	return []nestedField{
		{"cookieQuestion", f.CookieQuestion},
		{"iframe", f.Iframe},
		{"banner", f.Banner},
		{"banner2", f.Banner2},
	}
}

// Render builds the config document for f.
func Render(f Fields) (string, error) {
	var b strings.Builder
	b.WriteString("{")
	for _, s := range f.scalars() {
		v, err := util.Encode(s.value)
		if err != nil {
			return "", err
		}
		b.WriteString(`"` + s.key + `":` + v + ",")
	}
	for _, n := range f.nested() {
		if empty(n.value) {
			continue
		}
		v, err := util.Encode(n.value)
		if err != nil {
			return "", err
		}
		b.WriteString(`"` + n.key + `":` + v + ",")
	}
	return strings.TrimRight(b.String(), ",") + "}", nil
}
