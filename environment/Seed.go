package environment

import (
	"fmt"
	"strconv"
	"strings"
)

// Seed configures backend seeding: either a single core value, or a
// mapping of named seed components to values.
type Seed struct {
	Core       int64
	Components map[string]int64
}

// ParseSeed parses a seed flag value. The empty string means no
// seeding. A bare integer seeds the core generator. A comma-separated
// list of name=value pairs seeds individual components.
func ParseSeed(s string) (*Seed, error) {
	if s == "" {
		return nil, nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Seed{Core: v}, nil
	}

	components := make(map[string]int64)
	for _, pair := range strings.Split(s, ",") {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("parseSeed: invalid seed %q: expected "+
				"an integer or name=value pairs", s)
		}

		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parseSeed: invalid seed component "+
				"%q: %v", pair, err)
		}
		components[strings.TrimSpace(name)] = v
	}

	return &Seed{Components: components}, nil
}
