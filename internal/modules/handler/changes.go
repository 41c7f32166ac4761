package handler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/pilotdata/project/internal/pkg/types"
)

const notNull = "none is not an allowed value"

// changeSet collects the columns of a partial update. Fields that were
// absent from the payload are skipped.
type changeSet struct {
	changes repo.Changes
	errs    []apperr.FieldError
}

func newChangeSet() *changeSet {
	return &changeSet{changes: repo.Changes{}}
}

func (s *changeSet) fail(field, msg string) {
	s.errs = append(s.errs, apperr.FieldError{Loc: []string{"body", field}, Msg: msg})
}

// str validates a trimmed string against [minLen, maxLen] runes; maxLen 0
// means unbounded.
func (s *changeSet) str(field string, o types.Optional[string], nullable bool, minLen, maxLen int) {
	if !o.Set {
		return
	}
	if o.Null {
		if !nullable {
			s.fail(field, notNull)
			return
		}
		s.changes[field] = nil
		return
	}
	v := strings.TrimSpace(o.Value)
	n := utf8.RuneCountInString(v)
	if n < minLen {
		s.fail(field, fmt.Sprintf("ensure this value has at least %d characters", minLen))
		return
	}
	if maxLen > 0 && n > maxLen {
		s.fail(field, fmt.Sprintf("ensure this value has at most %d characters", maxLen))
		return
	}
	s.changes[field] = v
}

// value records o as is, converted for storage by conv.
func value[T any](s *changeSet, field string, o types.Optional[T], nullable bool, conv func(T) any) {
	if !o.Set {
		return
	}
	if o.Null {
		if !nullable {
			s.fail(field, notNull)
			return
		}
		s.changes[field] = nil
		return
	}
	s.changes[field] = conv(o.Value)
}

func (s *changeSet) result() (repo.Changes, error) {
	if len(s.errs) > 0 {
		return nil, apperr.Validations(s.errs, nil)
	}
	return s.changes, nil
}

func same[T any](v T) any { return v }

func trimAll(vs []string) []string {
	for i := range vs {
		vs[i] = strings.TrimSpace(vs[i])
	}
	return vs
}
