// Copyright (c) 2024 The fcatalog developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import "fmt"

// isGoodDBName reports whether name is safe to join onto DBBasePath as a
// catalog directory component. Translated directly from
// fcatalog_logic.py's is_good_db_name: only ASCII letters, digits, and
// underscore are allowed, which rules out path separators and ".." traversal
// without needing to reason about platform-specific path semantics.
func isGoodDBName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

func validateDBName(name string) error {
	if !isGoodDBName(name) {
		return fmt.Errorf("server: invalid catalog name %q", name)
	}
	return nil
}
