package pyenv

import (
	"context"
	"encoding/json"
	"fmt"
)

// sitePackagesScript lists every directory the interpreter installs
// packages into, user site included.
const sitePackagesScript = `import json, site
paths = []
try:
    paths.extend(site.getsitepackages())
except AttributeError:
    pass
try:
    paths.append(site.getusersitepackages())
except AttributeError:
    pass
print(json.dumps(paths))`

// SitePackages asks the interpreter for its package directories.
func (i *Interpreter) SitePackages(ctx context.Context) ([]string, error) {
	out, err := i.run(ctx, "-c", sitePackagesScript)
	if err != nil {
		return nil, fmt.Errorf("probe site-packages for %s: %w", i.path, err)
	}
	var paths []string
	if err := json.Unmarshal(out, &paths); err != nil {
		return nil, fmt.Errorf("parse site-packages probe output: %w", err)
	}
	return paths, nil
}

// ModuleResolver builds a resolver over the interpreter's package
// directories. The directory scan itself is deferred to first use.
func (i *Interpreter) ModuleResolver(ctx context.Context) (ModuleResolver, error) {
	dirs, err := i.SitePackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryUnavailable, err)
	}
	return NewDistInfoResolver(dirs...), nil
}
