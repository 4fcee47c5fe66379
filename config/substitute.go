package config

import (
	"os"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
)

// substituteVariables runs ${name} substitution over raw XML text. The
// document's own "variables" section (if present) is extracted with a
// plain, non-substituting parse first, since its values are the
// replacements, not recipients of them; environment variables are
// consulted as a fallback for names the document doesn't define.
func substituteVariables(raw []byte) ([]byte, error) {
	root, err := ParseNode(raw)
	if err != nil {
		return nil, err
	}

	vars := map[string]string{}
	if varsNode, ok := root.Get("variables"); ok {
		for _, child := range varsNode.Children {
			vars[child.XMLName.Local] = strings.TrimSpace(child.Content)
		}
	}

	mapping := func(name string) string {
		if v, ok := vars[name]; ok {
			return v
		}
		return os.Getenv(name)
	}

	out, err := envsubst.Eval(string(raw), mapping)
	if err != nil {
		return nil, errors.Wrap(err, "config: substituting variables")
	}
	return []byte(out), nil
}
