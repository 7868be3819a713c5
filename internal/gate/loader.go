package gate

import (
	"fmt"
	"os"

	"github.com/awslabs/interop/pkg/logging"

	"gopkg.in/yaml.v3"
)

// LoadRequirements reads and validates a required-outcomes file.
func LoadRequirements(path string) (Requirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements from %s: %w", path, err)
	}
	var reqs Requirements
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parsing requirements from %s: %w", path, err)
	}
	for test, impls := range reqs {
		for impl, roles := range impls {
			for _, role := range roles {
				if !role.Valid() {
					return nil, fmt.Errorf("%s: unknown role %q for %s/%s (want client or server)", path, role, test, impl)
				}
			}
		}
	}
	logging.Debug("gate", "Loaded %d required test(s) from %s", len(reqs), path)
	return reqs, nil
}
